package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emrekaraca/family-portal/internal/authz"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/emrekaraca/family-portal/internal/report"
	"github.com/emrekaraca/family-portal/internal/scope"
	"github.com/emrekaraca/family-portal/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxDocumentSize = 10 << 20 // 10MB

var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type DocumentService struct {
	db    *gorm.DB
	blobs storage.BlobStore
}

func NewDocumentService(db *gorm.DB, blobs storage.BlobStore) *DocumentService {
	return &DocumentService{db: db, blobs: blobs}
}

// Upload validates the buffered file and its metadata, stores the bytes, and
// persists the metadata row. Validation runs in full before any blob write.
func (s *DocumentService) Upload(ctx context.Context, user *models.User, in *dto.UploadDocumentInput) (*models.Document, error) {
	if err := authz.RequireFamily(user); err != nil {
		return nil, err
	}
	if len(in.Data) == 0 {
		return nil, validationErr("please upload a file")
	}
	if in.Size > maxDocumentSize {
		return nil, validationErr("file size must be less than 10MB")
	}
	if !allowedDocumentTypes[in.MimeType] {
		return nil, validationErr("invalid file type, only PDF, DOC, DOCX, JPG and PNG allowed")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("document name is required")
	}
	if len(name) > 200 {
		return nil, validationErr("document name must be less than 200 characters")
	}

	category := in.Category
	if category == "" {
		category = "other"
	}
	if !models.ValidDocumentCategory(category) {
		return nil, validationErr("invalid category")
	}

	if len(in.Description) > 1000 {
		return nil, validationErr("description must be less than 1000 characters")
	}

	fileURL, err := s.blobs.UploadDocument(ctx, in.Data, in.MimeType)
	if err != nil {
		return nil, fmt.Errorf("asset store upload failed: %w", err)
	}

	doc := models.Document{
		ID:           uuid.New(),
		Name:         name,
		Category:     category,
		FileURL:      fileURL,
		FileType:     in.MimeType,
		FileSize:     in.Size,
		Description:  in.Description,
		Tags:         tagsJSON(in.Tags),
		FamilyID:     *user.FamilyID,
		UploadedByID: user.ID,
	}

	if err := s.db.Create(&doc).Error; err != nil {
		// Metadata write failed after the blob landed; best-effort cleanup so
		// the blob does not leak.
		if delErr := s.blobs.Delete(ctx, fileURL, storage.ResourceTypeFor(in.MimeType)); delErr != nil {
			slog.Error("orphan blob cleanup failed", "url", fileURL, "error", delErr)
		}
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	doc.UploadedBy = user
	return &doc, nil
}

// List returns the family's documents, newest first, optionally filtered by
// category and a case-insensitive substring search.
func (s *DocumentService) List(user *models.User, category, search string) ([]models.Document, error) {
	if err := authz.RequireFamily(user); err != nil {
		return nil, err
	}

	q := s.db.Scopes(scope.ForFamily(*user.FamilyID)).
		Preload("UploadedBy").
		Order("created_at desc")
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}

	var docs []models.Document
	if err := q.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	if search == "" {
		return docs, nil
	}
	filtered := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if matchesSearch(search, d.Name, d.Description, d.TagList()) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

func (s *DocumentService) Get(user *models.User, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := s.db.Preload("UploadedBy").First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	if err := authz.RequireSameFamily(user, doc.FamilyID); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes the metadata row after a best-effort blob deletion. A blob
// host failure is logged and swallowed so the row still goes away.
func (s *DocumentService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	var doc models.Document
	err := s.db.First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDocumentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	if err := authz.RequireSameFamily(user, doc.FamilyID); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, doc.FileURL, storage.ResourceTypeFor(doc.FileType)); err != nil {
		slog.Warn("document blob deletion failed", "document_id", doc.ID, "error", err)
	}

	if err := s.db.Delete(&doc).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// GenerateReport renders a PDF inventory of all family documents.
func (s *DocumentService) GenerateReport(user *models.User) ([]byte, error) {
	if err := authz.RequireFamily(user); err != nil {
		return nil, err
	}

	var family models.Family
	if err := s.db.First(&family, "id = ?", *user.FamilyID).Error; err != nil {
		return nil, ErrFamilyNotFound
	}

	var docs []models.Document
	err := s.db.Scopes(scope.ForFamily(family.ID)).
		Preload("UploadedBy").
		Order("created_at desc").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	return report.BuildDocumentReport(&family, docs, user)
}
