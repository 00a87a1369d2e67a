package storage

import (
	"context"
	"io"
	"strings"

	"dreamdecol/models"
)

// StorageService persists uploaded media and removes it again.
type StorageService interface {
	// Save stores body under folder and returns where it can be fetched.
	Save(ctx context.Context, in Upload, folder string) (*StoredFile, error)
	// Delete removes a file previously returned by Save. URLs the backend does not own are ignored.
	Delete(ctx context.Context, url string) error
	Owns(url string) bool
}

// Upload is one file on its way to the backend.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// StoredFile describes a saved upload.
type StoredFile struct {
	URL         string `json:"url"`
	PublicID    string `json:"publicId,omitempty"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	MediaType   string `json:"mediaType"`
	Size        int64  `json:"size"`
}

// Folders.
const (
	FolderProducts   = "products"
	FolderActivities = "activities"
)

func mediaTypeOf(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return models.MediaVideo
	}
	return models.MediaImage
}
