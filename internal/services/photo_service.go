package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emrekaraca/family-portal/internal/authz"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/emrekaraca/family-portal/internal/scope"
	"github.com/emrekaraca/family-portal/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxPhotoSize = 5 << 20 // 5MB

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type PhotoService struct {
	db    *gorm.DB
	blobs storage.BlobStore
}

func NewPhotoService(db *gorm.DB, blobs storage.BlobStore) *PhotoService {
	return &PhotoService{db: db, blobs: blobs}
}

// Upload validates the buffered image and its metadata, stores the image and
// a derived thumbnail, and persists the row. When an album id is given, the
// album must exist and belong to the uploader's family before any blob
// write happens.
func (s *PhotoService) Upload(ctx context.Context, user *models.User, in *dto.UploadPhotoInput) (*models.Photo, error) {
	if err := authz.RequireFamily(user); err != nil {
		return nil, err
	}
	if len(in.Data) == 0 {
		return nil, validationErr("please upload a file")
	}
	if !allowedPhotoTypes[in.MimeType] {
		return nil, validationErr("please upload an image file (JPG or PNG)")
	}
	if in.Size > maxPhotoSize {
		return nil, validationErr("photo size must be less than 5MB")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = in.FileName
	}
	if len(name) > 200 {
		return nil, validationErr("photo name must be less than 200 characters")
	}
	if len(in.Caption) > 500 {
		return nil, validationErr("caption must be less than 500 characters")
	}

	var albumID *uuid.UUID
	if in.AlbumID != "" {
		id, err := uuid.Parse(in.AlbumID)
		if err != nil {
			return nil, validationErr("invalid album id")
		}
		var album models.Album
		err = s.db.First(&album, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlbumNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load album: %w", err)
		}
		if err := authz.RequireSameFamily(user, album.FamilyID); err != nil {
			return nil, err
		}
		albumID = &id
	}

	dateTaken, err := parseDateTaken(in.DateTaken)
	if err != nil {
		return nil, err
	}

	upload, err := s.blobs.UploadPhoto(ctx, in.Data)
	if err != nil {
		return nil, fmt.Errorf("asset store upload failed: %w", err)
	}

	photo := models.Photo{
		ID:           uuid.New(),
		Name:         name,
		Caption:      in.Caption,
		ImageURL:     upload.ImageURL,
		ThumbnailURL: upload.ThumbnailURL,
		Tags:         tagsJSON(in.Tags),
		DateTaken:    dateTaken,
		FamilyID:     *user.FamilyID,
		UploadedByID: user.ID,
		AlbumID:      albumID,
	}

	if err := s.db.Create(&photo).Error; err != nil {
		if delErr := s.blobs.Delete(ctx, upload.ImageURL, storage.ResourceImage); delErr != nil {
			slog.Error("orphan blob cleanup failed", "url", upload.ImageURL, "error", delErr)
		}
		if delErr := s.blobs.Delete(ctx, upload.ThumbnailURL, storage.ResourceImage); delErr != nil {
			slog.Error("orphan blob cleanup failed", "url", upload.ThumbnailURL, "error", delErr)
		}
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	photo.UploadedBy = user
	return &photo, nil
}

// List returns the family's photos, newest first, optionally restricted to
// an album and filtered by a substring search.
func (s *PhotoService) List(user *models.User, albumID, search string) ([]models.Photo, error) {
	if err := authz.RequireFamily(user); err != nil {
		return nil, err
	}

	q := s.db.Scopes(scope.ForFamily(*user.FamilyID)).
		Preload("UploadedBy").
		Order("created_at desc")
	if albumID != "" {
		id, err := uuid.Parse(albumID)
		if err != nil {
			return nil, validationErr("invalid album id")
		}
		q = q.Where("album_id = ?", id)
	}

	var photos []models.Photo
	if err := q.Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	if search == "" {
		return photos, nil
	}
	filtered := make([]models.Photo, 0, len(photos))
	for _, p := range photos {
		if matchesSearch(search, p.Name, p.Caption, p.TagList()) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *PhotoService) Get(user *models.User, id uuid.UUID) (*models.Photo, error) {
	var photo models.Photo
	err := s.db.Preload("UploadedBy").First(&photo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load photo: %w", err)
	}

	if err := authz.RequireSameFamily(user, photo.FamilyID); err != nil {
		return nil, err
	}
	return &photo, nil
}

// Delete removes the row after best-effort deletion of both the image and
// its thumbnail. Any album containing the photo loses it implicitly since
// the album's photo list derives from photos.album_id.
func (s *PhotoService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	var photo models.Photo
	err := s.db.First(&photo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPhotoNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load photo: %w", err)
	}

	if err := authz.RequireSameFamily(user, photo.FamilyID); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, photo.ImageURL, storage.ResourceImage); err != nil {
		slog.Warn("photo blob deletion failed", "photo_id", photo.ID, "error", err)
	}
	if photo.ThumbnailURL != "" {
		if err := s.blobs.Delete(ctx, photo.ThumbnailURL, storage.ResourceImage); err != nil {
			slog.Warn("thumbnail blob deletion failed", "photo_id", photo.ID, "error", err)
		}
	}

	if err := s.db.Delete(&photo).Error; err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

func parseDateTaken(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, validationErr("invalid dateTaken, expected RFC3339 or YYYY-MM-DD")
}
