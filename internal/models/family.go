package models

import (
	"time"

	"github.com/google/uuid"
)

// Family is the scoping unit: every document, photo and album belongs to
// exactly one family. Membership lives on users.family_id; the admin set is
// the members whose role is "admin".
type Family struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	InviteCode string    `gorm:"size:8;not null;uniqueIndex" json:"inviteCode"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
