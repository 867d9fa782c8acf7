// Package storage abstracts the external blob host holding raw file bytes.
// Metadata rows only keep the durable URLs returned from here.
package storage

import (
	"context"
	"strings"
)

// Cloudinary-style resource types used when deleting by public id.
const (
	ResourceImage = "image"
	ResourceRaw   = "raw"
)

// PhotoUpload is the result of storing a photo: the full-size image plus a
// derived square thumbnail.
type PhotoUpload struct {
	ImageURL     string
	ThumbnailURL string
}

// BlobStore stores and deletes raw file bytes. Delete is best-effort by
// contract: callers log a failure and proceed with their own cleanup, they
// never propagate it.
type BlobStore interface {
	UploadDocument(ctx context.Context, data []byte, mimeType string) (string, error)
	UploadPhoto(ctx context.Context, data []byte) (*PhotoUpload, error)
	Delete(ctx context.Context, fileURL, resourceType string) error
}

// ResourceTypeFor maps a stored MIME type to the blob host resource type it
// was uploaded under. PDFs are uploaded as images so they get previews.
func ResourceTypeFor(mimeType string) string {
	if strings.HasPrefix(mimeType, "image/") || mimeType == "application/pdf" {
		return ResourceImage
	}
	return ResourceRaw
}

// PublicIDFromURL derives the blob host public id (folder path plus name,
// no extension) from a delivery URL, e.g.
// https://res.example.com/.../family-portal/photos/abc123.jpg
// -> family-portal/photos/abc123. Uploads always land in two-level folders,
// so the last three path segments carry the id.
func PublicIDFromURL(fileURL string) string {
	parts := strings.Split(fileURL, "/")
	if len(parts) < 3 {
		return ""
	}
	id := strings.Join(parts[len(parts)-3:], "/")
	if dot := strings.LastIndex(id, "."); dot > 0 {
		id = id[:dot]
	}
	return id
}
