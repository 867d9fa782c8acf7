package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForFamily returns a GORM scope that filters by family_id.
func ForFamily(familyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("family_id = ?", familyID)
	}
}
