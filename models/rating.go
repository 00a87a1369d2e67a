package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ProductRating is one anonymous star rating. ClientIP is the per-client identity.
type ProductRating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Rating    int                `bson:"rating" json:"rating"`
	ClientIP  string             `bson:"clientIp" json:"-"`
	UserAgent string             `bson:"userAgent,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// RatingSummary is the average and count of a product's ratings.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

// RatingBucket is one row of the per-value grouping.
type RatingBucket struct {
	Rating int   `bson:"_id"`
	Count  int64 `bson:"count"`
}
