package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emrekaraca/family-portal/internal/authz"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/emrekaraca/family-portal/internal/scope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlbumService struct {
	db *gorm.DB
}

func NewAlbumService(db *gorm.DB) *AlbumService {
	return &AlbumService{db: db}
}

func (s *AlbumService) Create(user *models.User, req *dto.CreateAlbumRequest) (*models.Album, error) {
	if err := authz.RequireFamily(user); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationErr("album name cannot be empty")
	}
	if len(name) > 100 {
		return nil, validationErr("album name must be less than 100 characters")
	}
	if len(req.Description) > 500 {
		return nil, validationErr("description must be less than 500 characters")
	}

	album := models.Album{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
		FamilyID:    *user.FamilyID,
		CreatedByID: user.ID,
	}

	if err := s.db.Create(&album).Error; err != nil {
		return nil, fmt.Errorf("failed to create album: %w", err)
	}

	album.CreatedBy = user
	album.Photos = []models.Photo{}
	return &album, nil
}

func (s *AlbumService) List(user *models.User) ([]models.Album, error) {
	if err := authz.RequireFamily(user); err != nil {
		return nil, err
	}

	var albums []models.Album
	err := s.db.Scopes(scope.ForFamily(*user.FamilyID)).
		Preload("CreatedBy").
		Preload("Photos").
		Order("created_at desc").
		Find(&albums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	return albums, nil
}

func (s *AlbumService) Get(user *models.User, id uuid.UUID) (*models.Album, error) {
	var album models.Album
	err := s.db.Preload("CreatedBy").
		Preload("Photos").
		Preload("Photos.UploadedBy").
		First(&album, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAlbumNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load album: %w", err)
	}

	if err := authz.RequireSameFamily(user, album.FamilyID); err != nil {
		return nil, err
	}
	return &album, nil
}

// Delete removes the album and clears the album reference on its photos.
// The photos themselves are never deleted.
func (s *AlbumService) Delete(user *models.User, id uuid.UUID) error {
	var album models.Album
	err := s.db.First(&album, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAlbumNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load album: %w", err)
	}

	if err := authz.RequireSameFamily(user, album.FamilyID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Photo{}).
			Where("album_id = ?", album.ID).
			Update("album_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach photos: %w", err)
		}
		if err := tx.Delete(&album).Error; err != nil {
			return fmt.Errorf("failed to delete album: %w", err)
		}
		return nil
	})
}
