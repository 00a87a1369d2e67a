package repository

import (
	"context"
	"fmt"

	activityRepo "dreamdecol/database/repository/activity"
	adminRepo "dreamdecol/database/repository/admin"
	bookingRepo "dreamdecol/database/repository/booking"
	configRepo "dreamdecol/database/repository/configuration"
	contactRepo "dreamdecol/database/repository/contact"
	productRepo "dreamdecol/database/repository/product"
	ratingRepo "dreamdecol/database/repository/rating"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces and constructors.
type (
	BookingRepository       = bookingRepo.BookingRepository
	ProductRepository       = productRepo.ProductRepository
	RatingRepository        = ratingRepo.RatingRepository
	ConfigurationRepository = configRepo.ConfigurationRepository
	AdminRepository         = adminRepo.AdminRepository
	ActivityRepository      = activityRepo.ActivityRepository
	ContactRepository       = contactRepo.ContactRepository
)

var (
	NewMongoBookingRepo  = bookingRepo.NewMongoBookingRepo
	NewMongoProductRepo  = productRepo.NewMongoProductRepo
	NewMongoRatingRepo   = ratingRepo.NewMongoRatingRepo
	NewMongoConfigRepo   = configRepo.NewMongoConfigRepo
	NewMongoAdminRepo    = adminRepo.NewMongoAdminRepo
	NewMongoActivityRepo = activityRepo.NewMongoActivityRepo
	NewMongoContactRepo  = contactRepo.NewMongoContactRepo
)

// Repositories groups every collection repository of the application.
type Repositories struct {
	Bookings       BookingRepository
	Products       ProductRepository
	Ratings        RatingRepository
	Configurations ConfigurationRepository
	Admins         AdminRepository
	Activities     ActivityRepository
	Contacts       ContactRepository
}

// NewRepositories builds the Mongo-backed repositories on db.
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Bookings:       NewMongoBookingRepo(db),
		Products:       NewMongoProductRepo(db),
		Ratings:        NewMongoRatingRepo(db),
		Configurations: NewMongoConfigRepo(db),
		Admins:         NewMongoAdminRepo(db),
		Activities:     NewMongoActivityRepo(db),
		Contacts:       NewMongoContactRepo(db),
	}
}

// EnsureIndexes creates the indexes of every collection, stopping at the first failure.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	steps := []struct {
		name   string
		ensure func(context.Context) error
	}{
		{"bookings", r.Bookings.EnsureIndexes},
		{"products", r.Products.EnsureIndexes},
		{"productratings", r.Ratings.EnsureIndexes},
		{"configurations", r.Configurations.EnsureIndexes},
		{"adminusers", r.Admins.EnsureIndexes},
		{"activities", r.Activities.EnsureIndexes},
		{"contactmessages", r.Contacts.EnsureIndexes},
	}
	for _, s := range steps {
		if err := s.ensure(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}
