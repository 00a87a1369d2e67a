// File: database/repository/product/interface.go
package productRepo

import (
	"context"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// Update writes an admin edit of p, leaving rating aggregates and createdAt untouched,
	// and refreshes p from the stored document.
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)

	// FindBySKU returns the product carrying sku, ignoring excludeID; nil when none does.
	FindBySKU(ctx context.Context, sku string, excludeID *primitive.ObjectID) (*models.Product, error)
	ListActive(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	Featured(ctx context.Context, limit int) ([]models.Product, error)
	Related(ctx context.Context, p *models.Product, limit int) ([]models.Product, error)
	CategoryCounts(ctx context.Context) (map[string]int64, error)
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, average float64, count int64) error

	EnsureIndexes(ctx context.Context) error
}

type mongoProductRepo struct {
	coll *mongo.Collection
}

// NewMongoProductRepo constructs a ProductRepository on the products collection.
func NewMongoProductRepo(db *mongo.Database) ProductRepository {
	return &mongoProductRepo{coll: db.Collection("products")}
}
