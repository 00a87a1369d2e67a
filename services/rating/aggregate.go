package rating

import (
	"context"
	"math"

	"dreamdecol/models"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RoundAverage rounds to one decimal place, e.g. 4.666 -> 4.7.
func RoundAverage(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// EmptyDistribution has a zero bucket for every star value.
func EmptyDistribution() map[int]int64 {
	dist := make(map[int]int64, models.MaxRating)
	for i := models.MinRating; i <= models.MaxRating; i++ {
		dist[i] = 0
	}
	return dist
}

func (s *DefaultRatingService) summary(ctx context.Context, productID primitive.ObjectID) (models.RatingSummary, error) {
	avg, count, err := s.Repo.Summary(ctx, productID)
	if err != nil {
		return models.RatingSummary{}, err
	}
	return models.RatingSummary{AverageRating: RoundAverage(avg), TotalRatings: count}, nil
}

func (s *DefaultRatingService) distribution(ctx context.Context, productID primitive.ObjectID) (map[int]int64, error) {
	buckets, err := s.Repo.Distribution(ctx, productID)
	if err != nil {
		return EmptyDistribution(), err
	}
	dist := EmptyDistribution()
	for _, b := range buckets {
		if _, ok := dist[b.Rating]; ok {
			dist[b.Rating] = b.Count
		}
	}
	return dist, nil
}

func (s *DefaultRatingService) Summary(ctx context.Context, productID string) models.RatingSummary {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return models.RatingSummary{}
	}
	summary, err := s.summary(ctx, oid)
	if err != nil {
		utils.GetLogger().Warn("Rating summary unavailable", zap.String("productId", productID), zap.Error(err))
		return models.RatingSummary{}
	}
	return summary
}

func (s *DefaultRatingService) Distribution(ctx context.Context, productID string) map[int]int64 {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return EmptyDistribution()
	}
	dist, err := s.distribution(ctx, oid)
	if err != nil {
		utils.GetLogger().Warn("Rating distribution unavailable", zap.String("productId", productID), zap.Error(err))
		return EmptyDistribution()
	}
	return dist
}

// refreshProduct copies the current aggregate onto the product document.
func (s *DefaultRatingService) refreshProduct(ctx context.Context, productID primitive.ObjectID) {
	summary, err := s.summary(ctx, productID)
	if err == nil {
		err = s.Products.UpdateRatingStats(ctx, productID, summary.AverageRating, summary.TotalRatings)
	}
	if err != nil {
		utils.GetLogger().Warn("Failed to refresh product rating",
			zap.String("productId", productID.Hex()), zap.Error(err))
	}
}
