package handlers

import (
	"net/http"
	"strconv"

	"dreamdecol/models"
	"dreamdecol/services/booking"
	"dreamdecol/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the public booking form and the admin booking desk.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

var bookingRequiredFields = []string{"name", "email", "phone", "date", "time", "serviceType"}

type createBookingRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required,min=10,max=20"`
	Date        string `json:"date" binding:"required,ymd"`
	Time        string `json:"time" binding:"required"`
	ServiceType string `json:"serviceType" binding:"required"`
	Notes       string `json:"notes" binding:"max=500"`
}

type updateBookingRequest struct {
	Status      *string `json:"status"`
	Notes       *string `json:"notes" binding:"omitempty,max=500"`
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,min=10,max=20"`
	Date        *string `json:"date" binding:"omitempty,ymd"`
	Time        *string `json:"time"`
	ServiceType *string `json:"serviceType"`
}

// CreateBookingHandler books a slot for a visitor.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if missing := missingRequired(err); len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "All required fields must be provided",
				"required": bookingRequiredFields,
			})
			return
		}
		fail(c, bindingError(err, "Validation error"), "")
		return
	}

	b, err := h.Service.Create(c.Request.Context(), booking.CreateInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Date:        req.Date,
		Time:        req.Time,
		ServiceType: req.ServiceType,
		Notes:       req.Notes,
	})
	if err != nil {
		fail(c, err, "Failed to create booking. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"booking": presentBooking(b),
	})
}

// AvailabilityHandler lists free and booked slots for ?date=.
func (h *BookingHandler) AvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date parameter is required"})
		return
	}
	availability, err := h.Service.Availability(c.Request.Context(), date)
	if err != nil {
		fail(c, err, "Failed to check availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"date":           availability.Date,
		"availableSlots": availability.AvailableSlots,
		"bookedSlots":    availability.BookedSlots,
	})
}

func queryInt(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return def
}

// ListBookingsHandler is the paginated admin listing.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	filter := models.BookingFilter{
		Status:      c.Query("status"),
		ServiceType: c.Query("serviceType"),
		Search:      c.Query("search"),
		SortBy:      c.DefaultQuery("sortBy", "createdAt"),
		SortAsc:     c.Query("sortOrder") == "asc",
		Page:        queryInt(c, "page", 1),
		Limit:       queryInt(c, "limit", 0),
	}
	bookings, page, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bookings":   presentBookings(bookings),
		"pagination": page,
	})
}

// UpdateBookingHandler applies a partial admin update.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindingError(err, "Validation error"), "")
		return
	}
	b, err := h.Service.Update(c.Request.Context(), c.Param("id"), booking.UpdateInput{
		Status:      req.Status,
		Notes:       req.Notes,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Date:        req.Date,
		Time:        req.Time,
		ServiceType: req.ServiceType,
	})
	if err != nil {
		fail(c, err, "Failed to update booking")
		return
	}
	getLogger(c).Info("Booking updated", zap.String("bookingId", b.ID.Hex()), zap.String("status", b.Status))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated successfully",
		"booking": presentBooking(b),
	})
}

func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Failed to delete booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted successfully"})
}

// BookingStatsHandler summarizes bookings over ?period= days.
func (h *BookingHandler) BookingStatsHandler(c *gin.Context) {
	period := queryInt(c, "period", 30)
	if period < 1 {
		fail(c, utils.NewValidationError("Period must be a positive number of days"), "")
		return
	}
	stats, err := h.Service.Stats(c.Request.Context(), period)
	if err != nil {
		fail(c, err, "Failed to fetch booking statistics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
