package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// BookingStatuses lists every valid status.
var BookingStatuses = []string{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

// DefaultTimeSlots and DefaultServiceTypes apply when no configuration overrides them.
var (
	DefaultTimeSlots    = []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	DefaultServiceTypes = []string{"consultation", "showroom-visit", "home-measurement", "delivery"}
)

// Booking represents a showroom appointment.
type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD
	Time        string             `bson:"time" json:"time"` // HH:MM, one of the configured slots
	ServiceType string             `bson:"serviceType" json:"serviceType"`
	Notes       string             `bson:"notes" json:"notes"`
	Status      string             `bson:"status" json:"status"`
	// SlotHeld mirrors IsActiveBookingStatus(Status); the partial unique index keys on it.
	SlotHeld  bool      `bson:"slotHeld" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsActiveBookingStatus reports whether a booking in this status occupies its slot.
func IsActiveBookingStatus(status string) bool {
	return status == BookingPending || status == BookingConfirmed
}

// NewBooking builds a pending booking with timestamps and derived fields set.
func NewBooking(name, email, phone, date, slot, serviceType, notes string, now time.Time) *Booking {
	b := &Booking{
		Name:        name,
		Email:       email,
		Phone:       phone,
		Date:        date,
		Time:        slot,
		ServiceType: serviceType,
		Notes:       notes,
		CreatedAt:   now,
	}
	b.SetStatus(BookingPending, now)
	return b
}

// SetStatus changes the status and keeps SlotHeld and UpdatedAt in sync.
func (b *Booking) SetStatus(status string, now time.Time) {
	b.Status = status
	b.SlotHeld = IsActiveBookingStatus(status)
	b.UpdatedAt = now
}

// Touch stamps UpdatedAt and recomputes derived fields.
func (b *Booking) Touch(now time.Time) {
	b.SlotHeld = IsActiveBookingStatus(b.Status)
	b.UpdatedAt = now
}

// BookingFilter narrows the admin booking listing.
type BookingFilter struct {
	Status      string
	ServiceType string
	Search      string
	SortBy      string
	SortAsc     bool
	Page        int
	Limit       int
}

// CountByKey is one row of a grouping aggregation.
type CountByKey struct {
	Key   string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// BookingStats is the admin dashboard summary.
type BookingStats struct {
	Total        int64        `json:"total"`
	Pending      int64        `json:"pending"`
	Confirmed    int64        `json:"confirmed"`
	Completed    int64        `json:"completed"`
	Cancelled    int64        `json:"cancelled"`
	Recent       int64        `json:"recent"`
	ServiceTypes []CountByKey `json:"serviceTypes"`
	Status       []CountByKey `json:"status"`
	Daily        []CountByKey `json:"daily"`
}

// Availability lists the free and occupied slots of one day.
type Availability struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
	BookedSlots    []string `json:"bookedSlots"`
}
