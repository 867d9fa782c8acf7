package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Photo struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"size:200" json:"name"`
	Caption      string         `gorm:"size:500" json:"caption"`
	ImageURL     string         `gorm:"type:text;not null" json:"imageURL"`
	ThumbnailURL string         `gorm:"type:text" json:"thumbnailURL"`
	Tags         datatypes.JSON `json:"tags"`
	DateTaken    *time.Time     `json:"dateTaken"`
	FamilyID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"family"`
	UploadedByID uuid.UUID      `gorm:"type:uuid;not null" json:"-"`
	UploadedBy   *User          `gorm:"foreignKey:UploadedByID" json:"uploadedBy,omitempty"`
	AlbumID      *uuid.UUID     `gorm:"type:uuid;index" json:"album"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (p *Photo) TagList() []string {
	var tags []string
	if len(p.Tags) > 0 {
		_ = json.Unmarshal(p.Tags, &tags)
	}
	return tags
}
