package booking

import (
	"context"
	"time"

	bookingRepo "dreamdecol/database/repository/booking"
	"dreamdecol/models"
	"dreamdecol/services/settings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	// TryReserve checks that (date, slot) is valid and free, ignoring excludeID. It never writes.
	TryReserve(ctx context.Context, date, slot string, excludeID *primitive.ObjectID) error

	Create(ctx context.Context, input CreateInput) (*models.Booking, error)
	Availability(ctx context.Context, date string) (*models.Availability, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, models.Pagination, error)
	Update(ctx context.Context, id string, input UpdateInput) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, periodDays int) (*models.BookingStats, error)
}

// CreateInput is a public booking request.
type CreateInput struct {
	Name        string
	Email       string
	Phone       string
	Date        string
	Time        string
	ServiceType string
	Notes       string
}

// UpdateInput carries the fields an admin may change; nil means unchanged.
type UpdateInput struct {
	Status      *string
	Notes       *string
	Name        *string
	Email       *string
	Phone       *string
	Date        *string
	Time        *string
	ServiceType *string
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Settings settings.Provider
	Now      func() time.Time
}

func NewBookingService(repo bookingRepo.BookingRepository, provider settings.Provider) *DefaultBookingService {
	return &DefaultBookingService{Repo: repo, Settings: provider, Now: time.Now}
}
