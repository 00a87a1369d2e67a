// File: database/repository/rating/crud.go
package ratingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dreamdecol/database"
	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoRatingRepo) Create(ctx context.Context, rating *models.ProductRating) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rating.ID.IsZero() {
		rating.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, rating); err != nil {
		return database.MapWriteError(err)
	}
	return nil
}

func (r *mongoRatingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProductRating, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rating models.ProductRating
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rating); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch rating: %w", err)
	}
	return &rating, nil
}

func (r *mongoRatingRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoRatingRepo) FindByClient(ctx context.Context, productID primitive.ObjectID, clientIP string) (*models.ProductRating, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rating models.ProductRating
	err := r.coll.FindOne(ctx, bson.M{"productId": productID, "clientIp": clientIP}).Decode(&rating)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up client rating: %w", err)
	}
	return &rating, nil
}
