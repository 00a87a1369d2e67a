package rating

import (
	"context"
	"errors"
	"math"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	MsgAlreadyRated  = "You have already rated this product from this device/IP address"
	msgOncePerDevice = "Each customer can only rate a product once per device"
	recentLimit      = 10
	unknownProduct   = "Unknown Product"
)

func duplicateError(existing *models.ProductRating) *utils.AppError {
	err := utils.NewConflictError(MsgAlreadyRated)
	err.Payload = gin.H{"message": msgOncePerDevice}
	if existing != nil {
		err.Payload["existingRating"] = gin.H{
			"id":        existing.ID.Hex(),
			"rating":    existing.Rating,
			"createdAt": existing.CreatedAt,
		}
	}
	return err
}

func parseProductID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.NewValidationError("Validation failed", "Valid product ID is required")
	}
	return oid, nil
}

func (s *DefaultRatingService) Submit(ctx context.Context, input SubmitInput) (*models.ProductRating, error) {
	productID, err := parseProductID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if input.Rating != math.Trunc(input.Rating) || input.Rating < models.MinRating || input.Rating > models.MaxRating {
		return nil, utils.NewValidationError("Validation failed", "Rating must be an integer between 1 and 5")
	}
	clientID := input.ClientID
	if clientID == "" {
		clientID = "unknown"
	}

	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFoundError("Product not found")
		}
		return nil, utils.NewInternalError("Failed to submit rating", err)
	}

	existing, err := s.Repo.FindByClient(ctx, productID, clientID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to check duplicate rating", err)
	}
	if existing != nil {
		return nil, duplicateError(existing)
	}

	rating := &models.ProductRating{
		ProductID: productID,
		Rating:    int(input.Rating),
		ClientIP:  clientID,
		UserAgent: input.UserAgent,
		CreatedAt: s.Now(),
	}
	if err := s.Repo.Create(ctx, rating); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, duplicateError(nil)
		}
		return nil, utils.NewInternalError("Failed to submit rating", err)
	}

	s.refreshProduct(ctx, productID)
	utils.GetLogger().Info("Rating submitted",
		zap.String("productId", productID.Hex()),
		zap.Int("rating", rating.Rating))
	return rating, nil
}

// productTitle resolves the product; only a missing product is an error, other failures degrade to a placeholder.
func (s *DefaultRatingService) productTitle(ctx context.Context, id primitive.ObjectID) (string, error) {
	p, err := s.Products.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return "", utils.NewNotFoundError("Product not found")
	}
	if err != nil {
		utils.GetLogger().Warn("Product lookup failed", zap.String("productId", id.Hex()), zap.Error(err))
		return unknownProduct, nil
	}
	return p.Title, nil
}

func (s *DefaultRatingService) Details(ctx context.Context, productID string) (*Details, error) {
	oid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	title, err := s.productTitle(ctx, oid)
	if err != nil {
		return nil, err
	}

	d := &Details{
		ProductID:          productID,
		ProductTitle:       title,
		RatingDistribution: EmptyDistribution(),
		RecentRatings:      []models.ProductRating{},
	}
	if summary, err := s.summary(ctx, oid); err == nil {
		d.AverageRating, d.TotalRatings = summary.AverageRating, summary.TotalRatings
	} else {
		utils.GetLogger().Warn("Rating summary unavailable", zap.String("productId", productID), zap.Error(err))
	}
	if dist, err := s.distribution(ctx, oid); err == nil {
		d.RatingDistribution = dist
	}
	if recent, err := s.Repo.Recent(ctx, oid, recentLimit); err == nil {
		d.RecentRatings = recent
	} else {
		utils.GetLogger().Warn("Recent ratings unavailable", zap.String("productId", productID), zap.Error(err))
	}
	return d, nil
}

func (s *DefaultRatingService) Stats(ctx context.Context, productID string) (*Stats, error) {
	oid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	title, err := s.productTitle(ctx, oid)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		ProductID:          productID,
		ProductTitle:       title,
		RatingDistribution: make(map[int]BucketStat, models.MaxRating),
		RatingBreakdown:    make(map[int]int, models.MaxRating),
	}
	summary, err := s.summary(ctx, oid)
	if err == nil {
		st.AverageRating, st.TotalRatings = summary.AverageRating, summary.TotalRatings
	}
	dist, _ := s.distribution(ctx, oid)
	for i := models.MinRating; i <= models.MaxRating; i++ {
		count := dist[i]
		pct := 0
		if st.TotalRatings > 0 {
			pct = int(math.Round(float64(count) / float64(st.TotalRatings) * 100))
		}
		st.RatingDistribution[i] = BucketStat{Count: count, Percentage: pct}
		st.RatingBreakdown[i] = pct
	}
	return st, nil
}

func (s *DefaultRatingService) Delete(ctx context.Context, ratingID string) error {
	oid, err := primitive.ObjectIDFromHex(ratingID)
	if err != nil {
		return utils.NewValidationError("Validation failed", "Valid rating ID is required")
	}
	rating, err := s.Repo.GetByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return utils.NewNotFoundError("Rating not found")
	}
	if err != nil {
		return utils.NewInternalError("Failed to delete rating", err)
	}
	if err := s.Repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFoundError("Rating not found")
		}
		return utils.NewInternalError("Failed to delete rating", err)
	}
	s.refreshProduct(ctx, rating.ProductID)
	return nil
}
