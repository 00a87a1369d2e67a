package catalog

import (
	"context"
	"time"

	productRepo "dreamdecol/database/repository/product"
	"dreamdecol/models"
	"dreamdecol/services/settings"
)

// RelatedLimit caps the related products listing.
const RelatedLimit = 4

type CatalogService interface {
	List(ctx context.Context, q models.ProductQuery) ([]models.Product, models.Pagination, error)
	Featured(ctx context.Context) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.CategoryCount, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Related(ctx context.Context, id string) ([]models.Product, error)

	AdminList(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductInput is a create or partial update payload; nil fields are left unchanged.
type ProductInput struct {
	Title            *string            `json:"title"`
	SKU              *string            `json:"sku"`
	Price            *float64           `json:"price"`
	Currency         *string            `json:"currency"`
	ShortDescription *string            `json:"shortDescription"`
	Description      *string            `json:"description"`
	Dimensions       *models.Dimensions `json:"dimensions"`
	Materials        *[]string          `json:"materials"`
	MainImage        *string            `json:"mainImage"`
	Images           *[]string          `json:"images"`
	VideoURL         *string            `json:"videoUrl"`
	Tags             *[]string          `json:"tags"`
	Category         *string            `json:"category"`
	Featured         *bool              `json:"featured"`
	InStock          *bool              `json:"inStock"`
	StockQuantity    *int               `json:"stockQuantity"`
	Weight           *string            `json:"weight"`
	AssemblyRequired *bool              `json:"assemblyRequired"`
	Warranty         *string            `json:"warranty"`
	CareInstructions *string            `json:"careInstructions"`
	SEO              *models.SEO        `json:"seo"`
	Status           *string            `json:"status"`
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo     productRepo.ProductRepository
	Settings settings.Provider
	Now      func() time.Time
}

func NewCatalogService(repo productRepo.ProductRepository, provider settings.Provider) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo, Settings: provider, Now: time.Now}
}
