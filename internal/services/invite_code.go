package services

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/emrekaraca/family-portal/internal/models"
	"gorm.io/gorm"
)

const (
	inviteCodeLength  = 8
	inviteCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// newInviteCode returns a random 8-character uppercase alphanumeric code.
func newInviteCode() (string, error) {
	b := make([]byte, inviteCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i := range b {
		b[i] = inviteCodeCharset[int(b[i])%len(inviteCodeCharset)]
	}
	return string(b), nil
}

// generateInviteCode produces a code not yet taken by any family. Collisions
// are vanishingly rare at 36^8 but retried a few times regardless.
func generateInviteCode(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := newInviteCode()
		if err != nil {
			return "", err
		}
		var existing models.Family
		err = db.Where("invite_code = ?", code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("invite code lookup failed: %w", err)
		}
	}
	return "", errors.New("could not generate a unique invite code")
}
