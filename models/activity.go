package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MediaImage = "image"
	MediaVideo = "video"
)

// DefaultActivityImage is used when an activity is created without media.
const DefaultActivityImage = "https://images.unsplash.com/photo-1618219908412-a29a1bb7b86e?w=800&h=600&fit=crop"

// Activity is a dated media post shown on the storefront.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	MediaType   string             `bson:"mediaType" json:"mediaType"`
	MediaURL    string             `bson:"mediaUrl" json:"mediaUrl"`
	Date        time.Time          `bson:"date" json:"date"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
