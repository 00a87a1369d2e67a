package handlers

import (
	"strings"
	"time"

	"dreamdecol/models"
	"dreamdecol/services/admin"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormatDate renders a YYYY-MM-DD date as "January 2, 2006". Unparseable input is returned as is.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// FormatTime renders a HH:MM slot as "9:00 AM". Unparseable input is returned as is.
func FormatTime(slot string) string {
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return slot
	}
	return t.Format("3:04 PM")
}

// RatingStars renders a 1..5 rating as filled and empty stars.
func RatingStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > models.MaxRating {
		rating = models.MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", models.MaxRating-rating)
}

type bookingView struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Date          string             `json:"date"`
	Time          string             `json:"time"`
	ServiceType   string             `json:"serviceType"`
	Notes         string             `json:"notes"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	FormattedDate string             `json:"formattedDate"`
	FormattedTime string             `json:"formattedTime"`
}

func presentBooking(b *models.Booking) bookingView {
	return bookingView{
		ID:            b.ID,
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		Date:          b.Date,
		Time:          b.Time,
		ServiceType:   b.ServiceType,
		Notes:         b.Notes,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		FormattedDate: FormatDate(b.Date),
		FormattedTime: FormatTime(b.Time),
	}
}

func presentBookings(bookings []models.Booking) []bookingView {
	out := make([]bookingView, 0, len(bookings))
	for i := range bookings {
		out = append(out, presentBooking(&bookings[i]))
	}
	return out
}

type ratingView struct {
	ID          primitive.ObjectID `json:"id"`
	ProductID   primitive.ObjectID `json:"productId"`
	Rating      int                `json:"rating"`
	CreatedAt   time.Time          `json:"createdAt"`
	RatingStars string             `json:"ratingStars"`
}

func presentRatings(ratings []models.ProductRating) []ratingView {
	out := make([]ratingView, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, ratingView{
			ID:          r.ID,
			ProductID:   r.ProductID,
			Rating:      r.Rating,
			CreatedAt:   r.CreatedAt,
			RatingStars: RatingStars(r.Rating),
		})
	}
	return out
}

type adminUserView struct {
	ID        primitive.ObjectID `json:"id"`
	Username  string             `json:"username"`
	Role      string             `json:"role"`
	IsActive  bool               `json:"isActive"`
	CreatedAt time.Time          `json:"createdAt,omitempty"`
}

func presentAdmin(u *models.AdminUser) adminUserView {
	return adminUserView{ID: u.ID, Username: u.Username, Role: u.Role, IsActive: u.IsActive, CreatedAt: u.CreatedAt}
}

func presentIdentity(id *admin.Identity) map[string]string {
	return map[string]string{"id": id.ID, "username": id.Username, "role": id.Role}
}
