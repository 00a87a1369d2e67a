// File: database/repository/rating/aggregates.go
package ratingRepo

import (
	"context"
	"fmt"
	"time"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoRatingRepo) Summary(ctx context.Context, productID primitive.ObjectID) (float64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"productId": productID}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Average float64 `bson:"average"`
		Count   int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, fmt.Errorf("failed to decode rating summary: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Average, rows[0].Count, nil
}

func (r *mongoRatingRepo) Distribution(ctx context.Context, productID primitive.ObjectID) ([]models.RatingBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"productId": productID}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$rating"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rating distribution: %w", err)
	}
	defer cursor.Close(ctx)

	buckets := []models.RatingBucket{}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode rating distribution: %w", err)
	}
	return buckets, nil
}

func (r *mongoRatingRepo) Recent(ctx context.Context, productID primitive.ObjectID, limit int) ([]models.ProductRating, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"clientIp": 0, "userAgent": 0})
	cursor, err := r.coll.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer cursor.Close(ctx)

	ratings := []models.ProductRating{}
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	return ratings, nil
}
