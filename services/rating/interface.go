package rating

import (
	"context"
	"time"

	ratingRepo "dreamdecol/database/repository/rating"
	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingService interface {
	Submit(ctx context.Context, input SubmitInput) (*models.ProductRating, error)
	// Summary and Distribution never fail; any store error yields zeros.
	Summary(ctx context.Context, productID string) models.RatingSummary
	Distribution(ctx context.Context, productID string) map[int]int64
	Details(ctx context.Context, productID string) (*Details, error)
	Stats(ctx context.Context, productID string) (*Stats, error)
	Delete(ctx context.Context, ratingID string) error
}

// ProductStore is the part of the catalog the aggregator reads and denormalizes into.
type ProductStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, average float64, count int64) error
}

// SubmitInput is one anonymous rating. Rating arrives as a JSON number and must be integral.
type SubmitInput struct {
	ProductID string
	Rating    float64
	ClientID  string
	UserAgent string
}

// Details is the public rating overview of a product.
type Details struct {
	ProductID          string
	ProductTitle       string
	AverageRating      float64
	TotalRatings       int64
	RatingDistribution map[int]int64
	RecentRatings      []models.ProductRating
}

type BucketStat struct {
	Count      int64 `json:"count"`
	Percentage int   `json:"percentage"`
}

// Stats adds per-value percentages to the summary.
type Stats struct {
	ProductID          string
	ProductTitle       string
	AverageRating      float64
	TotalRatings       int64
	RatingDistribution map[int]BucketStat
	RatingBreakdown    map[int]int
}

// DefaultRatingService is the production implementation.
type DefaultRatingService struct {
	Repo     ratingRepo.RatingRepository
	Products ProductStore
	Now      func() time.Time
}

func NewRatingService(repo ratingRepo.RatingRepository, products ProductStore) *DefaultRatingService {
	return &DefaultRatingService{Repo: repo, Products: products, Now: time.Now}
}
