package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/services/settings"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) Create(ctx context.Context, input CreateInput) (*models.Booking, error) {
	if err := s.validateServiceType(input.ServiceType); err != nil {
		return nil, err
	}
	if err := s.TryReserve(ctx, input.Date, input.Time, nil); err != nil {
		return nil, err
	}

	b := models.NewBooking(
		strings.TrimSpace(input.Name),
		strings.ToLower(strings.TrimSpace(input.Email)),
		strings.TrimSpace(input.Phone),
		input.Date,
		input.Time,
		input.ServiceType,
		strings.TrimSpace(input.Notes),
		s.Now(),
	)
	if err := s.Repo.Create(ctx, b); err != nil {
		// Lost the race for the slot after the pre-check passed.
		if errors.Is(err, database.ErrDuplicate) {
			return nil, slotTakenError()
		}
		return nil, utils.NewInternalError("Failed to create booking. Please try again.", err)
	}

	utils.GetLogger().Info("Booking created",
		zap.String("bookingId", b.ID.Hex()),
		zap.String("date", b.Date),
		zap.String("time", b.Time))
	return b, nil
}

func (s *DefaultBookingService) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = s.Settings.Snapshot().Int(settings.KeyPaginationAdminLimit, settings.DefaultAdminPageLimit)
	}
	filter.Limit = models.ClampLimit(filter.Limit, settings.DefaultAdminPageLimit)
	bookings, total, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, utils.NewInternalError("Failed to fetch bookings", err)
	}
	return bookings, models.NewPagination(filter.Page, filter.Limit, len(bookings), total), nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.NewValidationError("Invalid booking ID")
	}
	return oid, nil
}

func (s *DefaultBookingService) Update(ctx context.Context, id string, input UpdateInput) (*models.Booking, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.Repo.GetByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundError()
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to update booking", err)
	}

	wasHeld := b.SlotHeld
	dateChanged := input.Date != nil && *input.Date != "" && *input.Date != b.Date
	timeChanged := input.Time != nil && *input.Time != "" && *input.Time != b.Time

	if input.Status != nil && *input.Status != "" {
		if err := s.validateStatus(*input.Status); err != nil {
			return nil, err
		}
		b.Status = *input.Status
	}
	if input.ServiceType != nil && *input.ServiceType != "" {
		if err := s.validateServiceType(*input.ServiceType); err != nil {
			return nil, err
		}
		b.ServiceType = *input.ServiceType
	}
	if dateChanged {
		if err := s.validateDate(*input.Date); err != nil {
			return nil, err
		}
		b.Date = *input.Date
	}
	if timeChanged {
		if err := s.validateSlot(*input.Time); err != nil {
			return nil, err
		}
		b.Time = *input.Time
	}
	if input.Notes != nil {
		b.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.Name != nil && *input.Name != "" {
		b.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil && *input.Email != "" {
		b.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil && *input.Phone != "" {
		b.Phone = strings.TrimSpace(*input.Phone)
	}
	b.Touch(s.Now())

	// A booking that ends up holding a slot it did not hold before must find it free.
	if b.SlotHeld && (dateChanged || timeChanged || !wasHeld) {
		if err := s.checkSlotFree(ctx, b.Date, b.Time, &b.ID); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.Replace(ctx, b); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			return nil, slotTakenError()
		case errors.Is(err, database.ErrNotFound):
			return nil, notFoundError()
		}
		return nil, utils.NewInternalError("Failed to update booking", err)
	}
	return b, nil
}

func (s *DefaultBookingService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	err = s.Repo.Delete(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return notFoundError()
	}
	if err != nil {
		return utils.NewInternalError("Failed to delete booking", err)
	}
	return nil
}

// Stats summarizes bookings; recent counts those created in the last periodDays days.
func (s *DefaultBookingService) Stats(ctx context.Context, periodDays int) (*models.BookingStats, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	now := s.Now()
	stats, err := s.Repo.Stats(ctx, now.AddDate(0, 0, -periodDays), now.Add(-7*24*time.Hour))
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch booking statistics", err)
	}
	return stats, nil
}
