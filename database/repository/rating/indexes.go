// File: database/repository/rating/indexes.go
package ratingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoRatingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// One rating per client per product.
		{
			Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "clientIp", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("product_client_unique"),
		},
		{
			Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("product_created_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create rating indexes: %w", err)
	}
	return nil
}
