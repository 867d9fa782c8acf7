package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values for User.Role. Admin powers only apply within the user's own family.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username  string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password  string         `gorm:"not null" json:"-"`
	Role      string         `gorm:"size:20;default:'member'" json:"role"`
	FamilyID  *uuid.UUID     `gorm:"type:uuid;index" json:"family"`
	Family    *Family        `gorm:"foreignKey:FamilyID" json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user holds the admin role within a family.
func (u *User) IsAdmin() bool {
	return u.FamilyID != nil && u.Role == RoleAdmin
}
