package models

import (
	"time"

	"github.com/google/uuid"
)

// Album groups photos within a family. Photos reference the album via
// photos.album_id, so deleting an album only clears that reference.
type Album struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	FamilyID    uuid.UUID `gorm:"type:uuid;not null;index" json:"family"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	Photos      []Photo   `gorm:"foreignKey:AlbumID" json:"photos"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
