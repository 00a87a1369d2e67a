// File: database/repository/admin/crud.go
package adminRepo

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

func (r *mongoAdminRepo) Create(ctx context.Context, u *models.AdminUser) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		return database.MapWriteError(err)
	}
	return nil
}

func (r *mongoAdminRepo) findOne(ctx context.Context, filter bson.M) (*models.AdminUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var u models.AdminUser
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch admin user: %w", err)
	}
	return &u, nil
}

func (r *mongoAdminRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoAdminRepo) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoAdminRepo) List(ctx context.Context) ([]models.AdminUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list admin users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.AdminUser{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode admin users: %w", err)
	}
	return users, nil
}

func (r *mongoAdminRepo) Replace(ctx context.Context, u *models.AdminUser) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return database.MapWriteError(err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoAdminRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete admin user: %w", err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoAdminRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count admin users: %w", err)
	}
	return n, nil
}
