// File: database/repository/product/queries.go
package productRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoProductRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepo) FindBySKU(ctx context.Context, sku string, excludeID *primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"sku": sku}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	var p models.Product
	err := r.coll.FindOne(ctx, filter).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up sku: %w", err)
	}
	return &p, nil
}

func sortFor(key string) bson.D {
	switch key {
	case "price-asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price-desc":
		return bson.D{{Key: "price", Value: -1}}
	case "name":
		return bson.D{{Key: "title", Value: 1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (r *mongoProductRepo) ListActive(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"status": models.ProductActive}
	if q.Category != "" && q.Category != "all" {
		filter["category"] = q.Category
	}
	if q.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"shortDescription": rx},
			bson.M{"tags": rx},
		}
	}

	opts := options.Find().SetSort(sortFor(q.Sort))
	if q.Limit > 0 {
		opts.SetSkip(models.PageSkip(q.Page, q.Limit)).SetLimit(int64(q.Limit))
	}

	products, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	return products, total, nil
}

func (r *mongoProductRepo) ListAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	products, err := r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *mongoProductRepo) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	products, err := r.find(ctx, bson.M{"status": models.ProductActive, "featured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	return products, nil
}

func (r *mongoProductRepo) Related(ctx context.Context, p *models.Product, limit int) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":      bson.M{"$ne": p.ID},
		"category": p.Category,
		"status":   models.ProductActive,
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	products, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list related products: %w", err)
	}
	return products, nil
}

func (r *mongoProductRepo) CategoryCounts(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.ProductActive}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.CountByKey
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}
