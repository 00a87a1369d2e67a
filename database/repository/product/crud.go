// File: database/repository/product/crud.go
package productRepo

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

func (r *mongoProductRepo) Create(ctx context.Context, p *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return database.MapWriteError(err)
	}
	return nil
}

func (r *mongoProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &p, nil
}

func (r *mongoProductRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check product: %w", err)
	}
	return n > 0, nil
}

// Fields an admin edit never writes: the rating aggregates belong to UpdateRatingStats.
var editProtectedFields = []string{"_id", "rating", "reviewCount", "createdAt"}

// Optional fields dropped from the document when emptied.
var editOptionalFields = []string{"sku", "videoUrl", "weight", "warranty", "careInstructions"}

// editUpdate builds the $set/$unset document of an admin edit of p.
func editUpdate(p *models.Product) (bson.M, error) {
	raw, err := bson.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}
	for _, k := range editProtectedFields {
		delete(set, k)
	}
	update := bson.M{"$set": set}
	unset := bson.M{}
	for _, k := range editOptionalFields {
		if _, ok := set[k]; !ok {
			unset[k] = ""
		}
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update, nil
}

func (r *mongoProductRepo) Update(ctx context.Context, p *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update, err := editUpdate(p)
	if err != nil {
		return err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": p.ID}, update, opts).Decode(p); err != nil {
		return database.MapWriteError(err)
	}
	return nil
}

func (r *mongoProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoProductRepo) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, average float64, count int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"rating": average, "reviewCount": count}}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
