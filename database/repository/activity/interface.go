// File: database/repository/activity/interface.go
package activityRepo

import (
	"context"
	"time"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ActivityRepository interface {
	Create(ctx context.Context, a *models.Activity) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error)
	Replace(ctx context.Context, a *models.Activity) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// List returns every activity, newest date first.
	List(ctx context.Context) ([]models.Activity, error)
	// ListBetween returns activities dated within [start, end], newest first.
	ListBetween(ctx context.Context, start, end time.Time) ([]models.Activity, error)
	// Search runs a text search over title and description, best match first.
	Search(ctx context.Context, query string) ([]models.Activity, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo constructs an ActivityRepository on the activities collection.
func NewMongoActivityRepo(db *mongo.Database) ActivityRepository {
	return &mongoActivityRepo{coll: db.Collection("activities")}
}
