package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DocumentCategories is the closed set of accepted document categories.
var DocumentCategories = []string{"birth_certificate", "passport", "deed", "health_record", "other"}

type Document struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"size:200;not null" json:"name"`
	Category     string         `gorm:"size:50;default:'other'" json:"category"`
	FileURL      string         `gorm:"type:text;not null" json:"fileURL"`
	FileType     string         `gorm:"size:100" json:"fileType"`
	FileSize     int64          `json:"fileSize"`
	Description  string         `gorm:"size:1000" json:"description"`
	Tags         datatypes.JSON `json:"tags"`
	FamilyID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"family"`
	UploadedByID uuid.UUID      `gorm:"type:uuid;not null" json:"-"`
	UploadedBy   *User          `gorm:"foreignKey:UploadedByID" json:"uploadedBy,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// TagList decodes the stored tags array. A missing or malformed column
// yields an empty list.
func (d *Document) TagList() []string {
	var tags []string
	if len(d.Tags) > 0 {
		_ = json.Unmarshal(d.Tags, &tags)
	}
	return tags
}

func ValidDocumentCategory(category string) bool {
	for _, c := range DocumentCategories {
		if c == category {
			return true
		}
	}
	return false
}
