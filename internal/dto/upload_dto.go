package dto

// UploadDocumentInput carries the multipart form fields plus the buffered
// file for a document upload. Size and MimeType come from the multipart
// header and are validated before any blob write.
type UploadDocumentInput struct {
	Name        string
	Category    string
	Description string
	Tags        string // comma-separated
	FileName    string
	MimeType    string
	Size        int64
	Data        []byte
}

// UploadPhotoInput is the photo counterpart of UploadDocumentInput.
type UploadPhotoInput struct {
	Name      string
	Caption   string
	AlbumID   string
	Tags      string // comma-separated
	DateTaken string // RFC3339 or YYYY-MM-DD
	FileName  string
	MimeType  string
	Size      int64
	Data      []byte
}

type CreateAlbumRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}
