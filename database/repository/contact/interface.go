// File: database/repository/contact/interface.go
package contactRepo

import (
	"context"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ContactRepository interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	// SetRead flips the read flag and returns the updated message.
	SetRead(ctx context.Context, id primitive.ObjectID, read bool) (*models.ContactMessage, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	EnsureIndexes(ctx context.Context) error
}

type mongoContactRepo struct {
	coll *mongo.Collection
}

// NewMongoContactRepo constructs a ContactRepository on the contactmessages collection.
func NewMongoContactRepo(db *mongo.Database) ContactRepository {
	return &mongoContactRepo{coll: db.Collection("contactmessages")}
}
