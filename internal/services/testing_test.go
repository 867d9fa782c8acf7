package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/emrekaraca/family-portal/internal/config"
	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/emrekaraca/family-portal/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Family{},
		&models.User{},
		&models.Document{},
		&models.Photo{},
		&models.Album{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-jwt-secret",
		JWTExpiry: time.Hour,
	}
}

func seedFamily(t *testing.T, db *gorm.DB, name, inviteCode string) *models.Family {
	t.Helper()
	family := &models.Family{
		ID:         uuid.New(),
		Name:       name,
		InviteCode: inviteCode,
	}
	require.NoError(t, db.Create(family).Error)
	return family
}

func seedUser(t *testing.T, db *gorm.DB, familyID *uuid.UUID, role, name, email, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Username: username,
		Password: string(hash),
		Role:     role,
		FamilyID: familyID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func reloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	return &user
}

// fakeBlobStore records uploads and deletions instead of hitting a real
// blob host.
type fakeBlobStore struct {
	documentUploads int
	photoUploads    int
	deletes         []string
	failUpload      bool
	failDelete      bool
}

func (f *fakeBlobStore) UploadDocument(_ context.Context, data []byte, mimeType string) (string, error) {
	if f.failUpload {
		return "", errors.New("blob host unavailable")
	}
	f.documentUploads++
	return fmt.Sprintf("https://blobs.test/family-portal/documents/doc%d.bin", f.documentUploads), nil
}

func (f *fakeBlobStore) UploadPhoto(_ context.Context, data []byte) (*storage.PhotoUpload, error) {
	if f.failUpload {
		return nil, errors.New("blob host unavailable")
	}
	f.photoUploads++
	return &storage.PhotoUpload{
		ImageURL:     fmt.Sprintf("https://blobs.test/family-portal/photos/img%d.jpg", f.photoUploads),
		ThumbnailURL: fmt.Sprintf("https://blobs.test/family-portal/thumbnails/thumb%d.jpg", f.photoUploads),
	}, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, fileURL, _ string) error {
	if f.failDelete {
		return errors.New("blob host unavailable")
	}
	f.deletes = append(f.deletes, fileURL)
	return nil
}
