// File: database/repository/contact/crud.go
package contactRepo

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

func (r *mongoContactRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "read", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("read_created_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create contact indexes: %w", err)
	}
	return nil
}

func (r *mongoContactRepo) Create(ctx context.Context, m *models.ContactMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	return nil
}

func (r *mongoContactRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var m models.ContactMessage
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch contact message: %w", err)
	}
	return &m, nil
}

func (r *mongoContactRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := []models.ContactMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode contact messages: %w", err)
	}
	return messages, nil
}

func (r *mongoContactRepo) SetRead(ctx context.Context, id primitive.ObjectID, read bool) (*models.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.ContactMessage
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": read}}, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update contact message: %w", err)
	}
	return &m, nil
}

func (r *mongoContactRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
