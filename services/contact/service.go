package contact

import (
	"context"
	"errors"
	"strings"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/utils"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const MsgMessageNotFound = "Contact message not found"

var validate = validator.New()

func (s *DefaultContactService) Create(ctx context.Context, input CreateInput) (*models.ContactMessage, error) {
	m := &models.ContactMessage{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:     strings.TrimSpace(input.Phone),
		Message:   strings.TrimSpace(input.Message),
		CreatedAt: s.Now(),
	}

	var details []string
	if m.Name == "" {
		details = append(details, "Name is required")
	}
	if validate.Var(m.Email, "required,email") != nil {
		details = append(details, "Please include a valid email")
	}
	if len([]rune(m.Message)) < 10 {
		details = append(details, "Message must be at least 10 characters")
	}
	if ref := strings.TrimSpace(input.ProductRef); ref != "" {
		oid, err := primitive.ObjectIDFromHex(ref)
		if err != nil {
			details = append(details, "Invalid product reference")
		} else {
			m.ProductRef = &oid
		}
	}
	if len(details) > 0 {
		return nil, utils.NewValidationError("Validation error", details...)
	}

	if m.ProductRef != nil && s.Products != nil {
		ok, err := s.Products.Exists(ctx, *m.ProductRef)
		if err != nil {
			return nil, utils.NewInternalError("Server error", err)
		}
		if !ok {
			return nil, utils.NewValidationError("Validation error", "Referenced product does not exist")
		}
	}

	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, utils.NewInternalError("Server error", err)
	}
	utils.GetLogger().Info("Contact message received", zap.String("messageId", m.ID.Hex()))
	return m, nil
}

func (s *DefaultContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	messages, err := s.Repo.List(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Server error", err)
	}
	return messages, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.NewNotFoundError(MsgMessageNotFound)
	}
	return oid, nil
}

func mapErr(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return utils.NewNotFoundError(MsgMessageNotFound)
	}
	return utils.NewInternalError("Server error", err)
}

func (s *DefaultContactService) Get(ctx context.Context, id string) (*models.ContactMessage, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

func (s *DefaultContactService) MarkRead(ctx context.Context, id string, read bool) (*models.ContactMessage, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m, err := s.Repo.SetRead(ctx, oid, read)
	if err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

func (s *DefaultContactService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, oid); err != nil {
		return mapErr(err)
	}
	return nil
}
