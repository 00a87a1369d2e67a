package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product statuses.
const (
	ProductActive       = "active"
	ProductInactive     = "inactive"
	ProductDiscontinued = "discontinued"
)

var (
	ProductStatuses   = []string{ProductActive, ProductInactive, ProductDiscontinued}
	ProductCategories = []string{"living-room", "bedroom", "dining", "office", "outdoor", "storage", "lighting", "decor"}
	Currencies        = []string{"USD", "EUR", "RWF"}
)

const DefaultCurrency = "RWF"

type Dimensions struct {
	Width  string `bson:"width,omitempty" json:"width,omitempty"`
	Depth  string `bson:"depth,omitempty" json:"depth,omitempty"`
	Height string `bson:"height,omitempty" json:"height,omitempty"`
}

type SEO struct {
	MetaTitle       string `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
}

// Product is a catalog entry.
type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	SKU              string             `bson:"sku,omitempty" json:"sku,omitempty"`
	Price            float64            `bson:"price" json:"price"`
	Currency         string             `bson:"currency" json:"currency"`
	ShortDescription string             `bson:"shortDescription" json:"shortDescription"`
	Description      string             `bson:"description" json:"description"`
	Dimensions       Dimensions         `bson:"dimensions" json:"dimensions"`
	Materials        []string           `bson:"materials" json:"materials"`
	MainImage        string             `bson:"mainImage" json:"mainImage"`
	Images           []string           `bson:"images" json:"images"`
	VideoURL         string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Tags             []string           `bson:"tags" json:"tags"`
	Category         string             `bson:"category" json:"category"`
	Featured         bool               `bson:"featured" json:"featured"`
	InStock          bool               `bson:"inStock" json:"inStock"`
	StockQuantity    int                `bson:"stockQuantity" json:"stockQuantity"`
	Weight           string             `bson:"weight,omitempty" json:"weight,omitempty"`
	AssemblyRequired bool               `bson:"assemblyRequired" json:"assemblyRequired"`
	Warranty         string             `bson:"warranty,omitempty" json:"warranty,omitempty"`
	CareInstructions string             `bson:"careInstructions,omitempty" json:"careInstructions,omitempty"`
	Rating           float64            `bson:"rating" json:"rating"`
	ReviewCount      int64              `bson:"reviewCount" json:"reviewCount"`
	SEO              SEO                `bson:"seo" json:"seo"`
	Status           string             `bson:"status" json:"status"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductQuery drives the public catalog listing.
type ProductQuery struct {
	Search   string
	Category string
	Sort     string // newest, price-asc, price-desc, name
	Page     int
	Limit    int
}

// CategoryCount is one entry of the public category listing.
type CategoryCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
