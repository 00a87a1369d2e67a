package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/services/settings"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const MsgProductNotFound = "Product not found"

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.NewNotFoundError(MsgProductNotFound)
	}
	return oid, nil
}

func skuTakenError(sku string) error {
	return utils.NewValidationError(fmt.Sprintf("SKU %q already exists. Please use a different SKU.", sku))
}

func (s *DefaultCatalogService) List(ctx context.Context, q models.ProductQuery) ([]models.Product, models.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = s.Settings.Snapshot().Int(settings.KeyPaginationDefaultLimit, settings.DefaultPageLimit)
	}
	q.Limit = models.ClampLimit(q.Limit, settings.DefaultPageLimit)
	products, total, err := s.Repo.ListActive(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, utils.NewInternalError("Failed to fetch products", err)
	}
	return products, models.NewPagination(q.Page, q.Limit, len(products), total), nil
}

func (s *DefaultCatalogService) Featured(ctx context.Context) ([]models.Product, error) {
	products, err := s.Repo.Featured(ctx, 0)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch featured products", err)
	}
	return products, nil
}

// Categories lists active product counts per category, largest first.
func (s *DefaultCatalogService) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	counts, err := s.Repo.CategoryCounts(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch categories", err)
	}
	out := make([]models.CategoryCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, models.CategoryCount{ID: id, Name: CategoryName(id), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *DefaultCatalogService) lookup(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.GetByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError(MsgProductNotFound)
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch product", err)
	}
	return p, nil
}

func (s *DefaultCatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.lookup(ctx, id)
}

func (s *DefaultCatalogService) Related(ctx context.Context, id string) ([]models.Product, error) {
	p, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.Repo.Related(ctx, p, RelatedLimit)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch related products", err)
	}
	return related, nil
}

func (s *DefaultCatalogService) AdminList(ctx context.Context) ([]models.Product, error) {
	products, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch products", err)
	}
	return products, nil
}

// checkSKU reports a friendly error when another product already holds sku.
func (s *DefaultCatalogService) checkSKU(ctx context.Context, sku string, exclude *primitive.ObjectID) error {
	if sku == "" {
		return nil
	}
	existing, err := s.Repo.FindBySKU(ctx, sku, exclude)
	if err != nil {
		return utils.NewInternalError("Failed to check SKU", err)
	}
	if existing != nil {
		return skuTakenError(sku)
	}
	return nil
}

func (s *DefaultCatalogService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	now := s.Now()
	p := &models.Product{
		Currency:  s.Settings.Snapshot().String(settings.KeyDefaultCurrency, models.DefaultCurrency),
		Materials: []string{},
		Images:    []string{},
		Tags:      []string{},
		InStock:   true,
		Status:    models.ProductActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(p, input)
	if err := s.validate(p); err != nil {
		return nil, err
	}
	if err := s.checkSKU(ctx, p.SKU, nil); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, skuTakenError(p.SKU)
		}
		return nil, utils.NewInternalError("Failed to create product", err)
	}
	utils.GetLogger().Info("Product created", zap.String("productId", p.ID.Hex()), zap.String("sku", p.SKU))
	return p, nil
}

func (s *DefaultCatalogService) Update(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	p, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(p, input)
	p.UpdatedAt = s.Now()
	if err := s.validate(p); err != nil {
		return nil, err
	}
	if input.SKU != nil {
		if err := s.checkSKU(ctx, p.SKU, &p.ID); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			return nil, skuTakenError(p.SKU)
		case errors.Is(err, database.ErrNotFound):
			return nil, utils.NewNotFoundError(MsgProductNotFound)
		}
		return nil, utils.NewInternalError("Failed to update product", err)
	}
	return p, nil
}

func (s *DefaultCatalogService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	err = s.Repo.Delete(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return utils.NewNotFoundError(MsgProductNotFound)
	}
	if err != nil {
		return utils.NewInternalError("Failed to delete product", err)
	}
	utils.GetLogger().Info("Product deleted", zap.String("productId", id))
	return nil
}
