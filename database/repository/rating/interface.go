// File: database/repository/rating/interface.go
package ratingRepo

import (
	"context"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RatingRepository interface {
	// Create inserts r. A second rating from the same client for the same product yields database.ErrDuplicate.
	Create(ctx context.Context, r *models.ProductRating) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProductRating, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	FindByClient(ctx context.Context, productID primitive.ObjectID, clientIP string) (*models.ProductRating, error)
	// Summary returns the raw average and count; zero ratings yield (0, 0).
	Summary(ctx context.Context, productID primitive.ObjectID) (float64, int64, error)
	Distribution(ctx context.Context, productID primitive.ObjectID) ([]models.RatingBucket, error)
	Recent(ctx context.Context, productID primitive.ObjectID, limit int) ([]models.ProductRating, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoRatingRepo struct {
	coll *mongo.Collection
}

// NewMongoRatingRepo constructs a RatingRepository on the productratings collection.
func NewMongoRatingRepo(db *mongo.Database) RatingRepository {
	return &mongoRatingRepo{coll: db.Collection("productratings")}
}
