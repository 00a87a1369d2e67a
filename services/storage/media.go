package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"dreamdecol/services/settings"
	"dreamdecol/utils"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// Limits bound one kind of upload.
type Limits struct {
	MaxSize      int64
	AllowedTypes []string
}

// MediaService validates uploads against the configured limits before storing them.
type MediaService struct {
	Store    StorageService
	Settings settings.Provider
}

func NewMediaService(store StorageService, provider settings.Provider) *MediaService {
	return &MediaService{Store: store, Settings: provider}
}

func (m *MediaService) ProductLimits() Limits {
	snap := m.Settings.Snapshot()
	return Limits{
		MaxSize:      int64(snap.Int(settings.KeyUploadMaxFileSize, settings.DefaultMaxFileSize)),
		AllowedTypes: snap.Strings(settings.KeyUploadAllowedTypes, settings.DefaultUploadTypes),
	}
}

func (m *MediaService) ActivityLimits() Limits {
	snap := m.Settings.Snapshot()
	return Limits{
		MaxSize:      int64(snap.Int(settings.KeyActivityMaxFileSize, settings.DefaultActivityMaxFileSize)),
		AllowedTypes: snap.Strings(settings.KeyActivityAllowedTypes, settings.DefaultActivityTypes),
	}
}

func (m *MediaService) UploadProductImage(ctx context.Context, fh *multipart.FileHeader) (*StoredFile, error) {
	return m.upload(ctx, fh, FolderProducts, m.ProductLimits())
}

func (m *MediaService) UploadActivityMedia(ctx context.Context, fh *multipart.FileHeader) (*StoredFile, error) {
	return m.upload(ctx, fh, FolderActivities, m.ActivityLimits())
}

// Remove deletes stored media. Failures are logged and swallowed.
func (m *MediaService) Remove(ctx context.Context, url string) {
	if url == "" || !m.Store.Owns(url) {
		return
	}
	if err := m.Store.Delete(ctx, url); err != nil {
		utils.GetLogger().Warn("Failed to remove media", zap.String("url", url), zap.Error(err))
	}
}

func (m *MediaService) upload(ctx context.Context, fh *multipart.FileHeader, folder string, limits Limits) (*StoredFile, error) {
	if fh.Size > limits.MaxSize {
		return nil, utils.NewValidationError(fmt.Sprintf("File too large. Maximum size is %s", humanSize(limits.MaxSize)))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, utils.NewValidationError("Unable to read uploaded file")
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, utils.NewValidationError("Unable to read uploaded file")
	}
	contentType, ok := allowed(detected, limits.AllowedTypes)
	if !ok {
		return nil, utils.NewValidationError(
			fmt.Sprintf("Invalid file type. Allowed types: %s", strings.Join(limits.AllowedTypes, ", ")))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, utils.NewInternalError("Failed to upload file", err)
	}

	stored, err := m.Store.Save(ctx, Upload{Filename: fh.Filename, ContentType: contentType, Size: fh.Size, Body: f}, folder)
	if err != nil {
		return nil, utils.NewInternalError("Failed to upload file", err)
	}
	utils.GetLogger().Info("Media uploaded",
		zap.String("url", stored.URL),
		zap.String("contentType", contentType),
		zap.Int64("size", stored.Size))
	return stored, nil
}

// allowed matches the sniffed type, or one of its parents, against the allow list.
func allowed(detected *mimetype.MIME, types []string) (string, bool) {
	for mt := detected; mt != nil; mt = mt.Parent() {
		for _, t := range types {
			if mt.Is(t) {
				return t, true
			}
		}
	}
	return "", false
}

func humanSize(n int64) string {
	const mb = 1024 * 1024
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
