// File: database/repository/configuration/crud.go
package configRepo

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

func (r *mongoConfigRepo) List(ctx context.Context, category string) ([]models.Configuration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"isActive": true}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "key", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list configurations: %w", err)
	}
	defer cursor.Close(ctx)

	configs := []models.Configuration{}
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, fmt.Errorf("failed to decode configurations: %w", err)
	}
	return configs, nil
}

func (r *mongoConfigRepo) GetActive(ctx context.Context, key string) (*models.Configuration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Configuration
	if err := r.coll.FindOne(ctx, bson.M{"key": key, "isActive": true}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch configuration %s: %w", key, err)
	}
	return &c, nil
}

func (r *mongoConfigRepo) Create(ctx context.Context, c *models.Configuration) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return database.MapWriteError(err)
	}
	return nil
}

func (r *mongoConfigRepo) Update(ctx context.Context, key string, upd models.ConfigurationUpdate, now time.Time) (*models.Configuration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"value": upd.Value, "updatedAt": now}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Configuration
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"key": key}, bson.M{"$set": set}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update configuration %s: %w", key, err)
	}
	return &c, nil
}

func (r *mongoConfigRepo) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return fmt.Errorf("failed to delete configuration %s: %w", key, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoConfigRepo) Upsert(ctx context.Context, c *models.Configuration) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"value":       c.Value,
			"description": c.Description,
			"category":    c.Category,
			"isActive":    c.IsActive,
			"updatedAt":   c.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": c.CreatedAt},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"key": c.Key}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert configuration %s: %w", c.Key, err)
	}
	return nil
}

func (r *mongoConfigRepo) InsertIfMissing(ctx context.Context, c *models.Configuration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$setOnInsert": bson.M{
		"value":       c.Value,
		"description": c.Description,
		"category":    c.Category,
		"isActive":    c.IsActive,
		"createdAt":   c.CreatedAt,
		"updatedAt":   c.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"key": c.Key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to seed configuration %s: %w", c.Key, err)
	}
	return res.UpsertedCount > 0, nil
}
