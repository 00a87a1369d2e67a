package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const cloudinaryRoot = "dreamdecol"

var versionSegment = regexp.MustCompile(`^v\d+$`)

// CloudinaryStore keeps media on Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary) *CloudinaryStore {
	return &CloudinaryStore{cld: cld}
}

func (s *CloudinaryStore) Save(ctx context.Context, in Upload, folder string) (*StoredFile, error) {
	params := uploader.UploadParams{
		Folder:       path.Join(cloudinaryRoot, folder),
		PublicID:     uuid.NewString(),
		ResourceType: "auto",
	}
	result, err := s.cld.Upload.Upload(ctx, in.Body, params)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStore: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("CloudinaryStore: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("CloudinaryStore: no URL returned")
	}
	return &StoredFile{
		URL:         result.SecureURL,
		PublicID:    result.PublicID,
		Filename:    in.Filename,
		ContentType: in.ContentType,
		MediaType:   mediaTypeOf(in.ContentType),
		Size:        in.Size,
	}, nil
}

func (s *CloudinaryStore) Owns(raw string) bool {
	_, _, ok := s.publicID(raw)
	return ok
}

// publicID extracts the resource type and public id from a delivery URL such as
// https://res.cloudinary.com/<cloud>/image/upload/v123/dreamdecol/activities/<id>.jpg
func (s *CloudinaryStore) publicID(raw string) (resourceType, publicID string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil || !strings.HasSuffix(u.Host, "cloudinary.com") {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// cloud, resource type, delivery type, then the id.
	if len(parts) < 4 || parts[0] != s.cld.Config.Cloud.CloudName {
		return "", "", false
	}
	resourceType, rest := parts[1], parts[3:]
	if len(rest) > 1 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	id := strings.Join(rest, "/")
	id = strings.TrimSuffix(id, path.Ext(id))
	return resourceType, id, id != ""
}

func (s *CloudinaryStore) Delete(ctx context.Context, raw string) error {
	resourceType, id, ok := s.publicID(raw)
	if !ok {
		return nil
	}
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id, ResourceType: resourceType}); err != nil {
		return fmt.Errorf("CloudinaryStore: failed to delete file: %w", err)
	}
	return nil
}
