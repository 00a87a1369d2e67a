package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadsRoute is where local uploads are served from.
const UploadsRoute = "/uploads"

// LocalStore writes media under a directory served statically at UploadsRoute.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("LocalStore: failed to create upload directory: %w", err)
	}
	return &LocalStore{Dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, in Upload, folder string) (*StoredFile, error) {
	name := folder + "-" + uuid.NewString() + strings.ToLower(filepath.Ext(in.Filename))
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("LocalStore: failed to create file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, in.Body)
	if err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("LocalStore: failed to write file: %w", err)
	}
	return &StoredFile{
		URL:         UploadsRoute + "/" + name,
		Filename:    name,
		ContentType: in.ContentType,
		MediaType:   mediaTypeOf(in.ContentType),
		Size:        n,
	}, nil
}

func (s *LocalStore) Owns(url string) bool {
	return strings.HasPrefix(url, UploadsRoute+"/")
}

func (s *LocalStore) Delete(_ context.Context, url string) error {
	if !s.Owns(url) {
		return nil
	}
	// Base strips any path components so deletes stay inside Dir.
	name := filepath.Base(strings.TrimPrefix(url, UploadsRoute+"/"))
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("LocalStore: failed to delete file: %w", err)
	}
	return nil
}
