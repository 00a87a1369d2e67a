package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactMessage is a message left through the storefront contact form.
type ContactMessage struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name       string              `bson:"name" json:"name"`
	Email      string              `bson:"email" json:"email"`
	Phone      string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Message    string              `bson:"message" json:"message"`
	ProductRef *primitive.ObjectID `bson:"productRef,omitempty" json:"productRef,omitempty"`
	Read       bool                `bson:"read" json:"read"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}
