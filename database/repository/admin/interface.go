// File: database/repository/admin/interface.go
package adminRepo

import (
	"context"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminRepository interface {
	Create(ctx context.Context, u *models.AdminUser) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	List(ctx context.Context) ([]models.AdminUser, error)
	Replace(ctx context.Context, u *models.AdminUser) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByRole(ctx context.Context, role string) (int64, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo constructs an AdminRepository on the adminusers collection.
func NewMongoAdminRepo(db *mongo.Database) AdminRepository {
	return &mongoAdminRepo{coll: db.Collection("adminusers")}
}
