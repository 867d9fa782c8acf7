package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Username   string `json:"username" validate:"required,max=50"`
	Password   string `json:"password" validate:"required,min=8"`
	FamilyName string `json:"familyName" validate:"required,max=100"`
}

type RegisterNoFamilyRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Username  string          `json:"username"`
	Role      string          `json:"role"`
	Family    *FamilyResponse `json:"family,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type AuthResponse struct {
	UserResponse
	Token string `json:"token"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
