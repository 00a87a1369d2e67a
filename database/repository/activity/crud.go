// File: database/repository/activity/crud.go
package activityRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoActivityRepo) Create(ctx context.Context, a *models.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *mongoActivityRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a models.Activity
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}
	return &a, nil
}

func (r *mongoActivityRepo) Replace(ctx context.Context, a *models.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoActivityRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoActivityRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}

func (r *mongoActivityRepo) List(ctx context.Context) ([]models.Activity, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

func (r *mongoActivityRepo) ListBetween(ctx context.Context, start, end time.Time) ([]models.Activity, error) {
	filter := bson.M{"date": bson.M{"$gte": start, "$lte": end}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

func (r *mongoActivityRepo) Search(ctx context.Context, query string) ([]models.Activity, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})
	return r.find(ctx, filter, opts)
}
