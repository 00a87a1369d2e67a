package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Configuration categories.
const (
	ConfigCategoryProduct      = "product"
	ConfigCategoryBooking      = "booking"
	ConfigCategoryUser         = "user"
	ConfigCategorySystem       = "system"
	ConfigCategoryLocalization = "localization"
)

var ConfigCategories = []string{
	ConfigCategoryProduct, ConfigCategoryBooking, ConfigCategoryUser,
	ConfigCategorySystem, ConfigCategoryLocalization,
}

// Configuration is one runtime-tunable key/value entry.
type Configuration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Key         string             `bson:"key" json:"key"`
	Value       interface{}        `bson:"value" json:"value"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"-"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ConfigurationUpdate carries the optional fields of an update; Value is required.
type ConfigurationUpdate struct {
	Value       interface{}
	Description *string
	Category    *string
	IsActive    *bool
}
