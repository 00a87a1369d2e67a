package contact

import (
	"context"
	"time"

	contactRepo "dreamdecol/database/repository/contact"
	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactService interface {
	Create(ctx context.Context, input CreateInput) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	Get(ctx context.Context, id string) (*models.ContactMessage, error)
	MarkRead(ctx context.Context, id string, read bool) (*models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

type CreateInput struct {
	Name       string
	Email      string
	Phone      string
	Message    string
	ProductRef string
}

// ProductChecker confirms a referenced product exists.
type ProductChecker interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// DefaultContactService is the production implementation.
type DefaultContactService struct {
	Repo     contactRepo.ContactRepository
	Products ProductChecker
	Now      func() time.Time
}

func NewContactService(repo contactRepo.ContactRepository, products ProductChecker) *DefaultContactService {
	return &DefaultContactService{Repo: repo, Products: products, Now: time.Now}
}
