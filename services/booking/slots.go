package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dreamdecol/models"
	"dreamdecol/services/settings"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

func (s *DefaultBookingService) timeSlots() []string {
	return s.Settings.Snapshot().Strings(settings.KeyBookingTimeSlots, models.DefaultTimeSlots)
}

// validateDate accepts YYYY-MM-DD dates from today on, judged in the configured timezone.
func (s *DefaultBookingService) validateDate(date string) error {
	if len(date) != len(dateLayout) {
		return utils.NewValidationError("Validation error", MsgInvalidDate)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return utils.NewValidationError("Validation error", MsgInvalidDate)
	}
	today := s.Now().In(s.Settings.Snapshot().Location()).Format(dateLayout)
	if date < today {
		return utils.NewValidationError("Validation error", MsgInvalidDate)
	}
	return nil
}

func (s *DefaultBookingService) validateSlot(slot string) error {
	slots := s.timeSlots()
	if !contains(slots, slot) {
		return utils.NewValidationError("Validation error",
			fmt.Sprintf("Invalid time slot: %s. Valid time slots are: %s", slot, strings.Join(slots, ", ")))
	}
	return nil
}

func (s *DefaultBookingService) validateServiceType(serviceType string) error {
	types := s.Settings.Snapshot().Strings(settings.KeyBookingServiceTypes, models.DefaultServiceTypes)
	if !contains(types, serviceType) {
		return utils.NewValidationError("Validation error",
			fmt.Sprintf("Invalid service type: %s. Valid service types are: %s", serviceType, strings.Join(types, ", ")))
	}
	return nil
}

func (s *DefaultBookingService) validateStatus(status string) error {
	statuses := s.Settings.Snapshot().Strings(settings.KeyBookingStatuses, models.BookingStatuses)
	if !contains(statuses, status) || !contains(models.BookingStatuses, status) {
		return utils.NewValidationError("Validation error",
			fmt.Sprintf("Invalid status: %s. Valid statuses are: %s", status, strings.Join(statuses, ", ")))
	}
	return nil
}

// checkSlotFree reports a conflict when another booking already holds (date, slot).
func (s *DefaultBookingService) checkSlotFree(ctx context.Context, date, slot string, excludeID *primitive.ObjectID) error {
	holder, err := s.Repo.FindActiveAtSlot(ctx, date, slot, excludeID)
	if err != nil {
		return utils.NewInternalError("Failed to check availability", err)
	}
	if holder != nil {
		return slotTakenError()
	}
	return nil
}

func (s *DefaultBookingService) TryReserve(ctx context.Context, date, slot string, excludeID *primitive.ObjectID) error {
	if err := s.validateDate(date); err != nil {
		return err
	}
	if err := s.validateSlot(slot); err != nil {
		return err
	}
	return s.checkSlotFree(ctx, date, slot, excludeID)
}

func (s *DefaultBookingService) Availability(ctx context.Context, date string) (*models.Availability, error) {
	if date == "" {
		return nil, utils.NewValidationError("Date parameter is required")
	}
	bookings, err := s.Repo.ListActiveByDate(ctx, date)
	if err != nil {
		return nil, utils.NewInternalError("Failed to check availability", err)
	}

	booked := make([]string, 0, len(bookings))
	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		booked = append(booked, b.Time)
		taken[b.Time] = true
	}
	available := []string{}
	for _, slot := range s.timeSlots() {
		if !taken[slot] {
			available = append(available, slot)
		}
	}
	return &models.Availability{Date: date, AvailableSlots: available, BookedSlots: booked}, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
