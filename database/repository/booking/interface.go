// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	// Create inserts b and sets its ID. A concurrent holder of the same slot yields database.ErrDuplicate.
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Replace(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// FindActiveAtSlot returns the booking holding (date, slot), or nil when the slot is free.
	FindActiveAtSlot(ctx context.Context, date, slot string, excludeID *primitive.ObjectID) (*models.Booking, error)
	ListActiveByDate(ctx context.Context, date string) ([]models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int64, error)
	Stats(ctx context.Context, recentSince, dailySince time.Time) (*models.BookingStats, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a BookingRepository on the bookings collection.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{coll: db.Collection("bookings")}
}
