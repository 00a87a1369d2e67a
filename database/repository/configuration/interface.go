// File: database/repository/configuration/interface.go
package configRepo

import (
	"context"
	"time"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ConfigurationRepository interface {
	// List returns active entries, optionally restricted to one category, ordered by category and key.
	List(ctx context.Context, category string) ([]models.Configuration, error)
	GetActive(ctx context.Context, key string) (*models.Configuration, error)
	Create(ctx context.Context, c *models.Configuration) error
	Update(ctx context.Context, key string, upd models.ConfigurationUpdate, now time.Time) (*models.Configuration, error)
	Delete(ctx context.Context, key string) error

	// Upsert overwrites value, description, category and isActive of key, creating it if needed.
	Upsert(ctx context.Context, c *models.Configuration) error
	// InsertIfMissing creates c only when its key is absent and reports whether it did.
	InsertIfMissing(ctx context.Context, c *models.Configuration) (bool, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoConfigRepo struct {
	coll *mongo.Collection
}

// NewMongoConfigRepo constructs a ConfigurationRepository on the configurations collection.
func NewMongoConfigRepo(db *mongo.Database) ConfigurationRepository {
	return &mongoConfigRepo{coll: db.Collection("configurations")}
}
