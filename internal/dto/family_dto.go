package dto

import (
	"time"

	"github.com/google/uuid"
)

type JoinFamilyRequest struct {
	InviteCode string `json:"inviteCode" validate:"required,len=8"`
}

type CreateFamilyRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// MemberResponse is the trimmed user representation embedded in family
// payloads.
type MemberResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type FamilyResponse struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	InviteCode string           `json:"inviteCode"`
	Members    []MemberResponse `json:"members"`
	Admins     []MemberResponse `json:"admins"`
	CreatedAt  time.Time        `json:"createdAt"`
}
