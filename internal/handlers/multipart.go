package handlers

import (
	"io"
	"mime/multipart"
)

// readMultipartFile buffers an uploaded part fully in memory; sizes are
// bounded by the server body limit and re-checked inside the services.
func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
