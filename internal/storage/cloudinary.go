package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	documentFolder  = "family-portal/documents"
	photoFolder     = "family-portal/photos"
	thumbnailFolder = "family-portal/thumbnails"

	// Full-size photos are capped at 2000px wide; thumbnails are 300x300 fills.
	photoTransformation     = "c_limit,w_2000/q_auto"
	thumbnailTransformation = "c_fill,h_300,w_300/q_auto"
)

// CloudinaryStore implements BlobStore against Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) UploadDocument(ctx context.Context, data []byte, mimeType string) (string, error) {
	params := uploader.UploadParams{Folder: documentFolder}

	switch {
	case mimeType == "application/pdf":
		// Uploaded as an image so Cloudinary renders page previews.
		params.ResourceType = ResourceImage
		params.Format = "pdf"
	case strings.HasPrefix(mimeType, "image/"):
		params.ResourceType = ResourceImage
	default:
		params.ResourceType = ResourceRaw
	}

	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return "", fmt.Errorf("document upload failed: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("document upload failed: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStore) UploadPhoto(ctx context.Context, data []byte) (*PhotoUpload, error) {
	image, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:         photoFolder,
		ResourceType:   ResourceImage,
		Transformation: photoTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("photo upload failed: %w", err)
	}
	if image.Error.Message != "" {
		return nil, fmt.Errorf("photo upload failed: %s", image.Error.Message)
	}

	thumbnail, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:         thumbnailFolder,
		ResourceType:   ResourceImage,
		Transformation: thumbnailTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("thumbnail upload failed: %w", err)
	}
	if thumbnail.Error.Message != "" {
		return nil, fmt.Errorf("thumbnail upload failed: %s", thumbnail.Error.Message)
	}

	return &PhotoUpload{
		ImageURL:     image.SecureURL,
		ThumbnailURL: thumbnail.SecureURL,
	}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, fileURL, resourceType string) error {
	publicID := PublicIDFromURL(fileURL)
	if publicID == "" {
		return errors.New("could not derive public id from url")
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("blob deletion failed: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("blob deletion failed: %s", result.Error.Message)
	}
	return nil
}
