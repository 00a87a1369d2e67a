// File: database/repository/product/indexes.go
package productRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoProductRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// SKU is optional, so the unique index skips documents without one.
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("sku_unique"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_category_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "featured", Value: 1}},
			Options: options.Index().SetName("status_featured_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}
