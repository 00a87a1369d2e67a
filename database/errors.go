package database

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned by repositories when the addressed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// MapWriteError converts driver write errors into the repository sentinels.
func MapWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	default:
		return err
	}
}
