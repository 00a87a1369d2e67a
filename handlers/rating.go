package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dreamdecol/middleware"
	"dreamdecol/services/rating"

	"github.com/gin-gonic/gin"
)

// RatingHandler serves anonymous product ratings.
type RatingHandler struct {
	Service rating.RatingService
}

func NewRatingHandler(svc rating.RatingService) *RatingHandler {
	return &RatingHandler{Service: svc}
}

type submitRatingRequest struct {
	ProductID string   `json:"productId" binding:"required,objectid"`
	Rating    *numeric `json:"rating" binding:"required"`
}

// numeric accepts a JSON number or a numeric string such as "5".
type numeric float64

func (n *numeric) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		*n = numeric(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = numeric(f)
	return nil
}

// SubmitRatingHandler records one rating per client and product.
func (h *RatingHandler) SubmitRatingHandler(c *gin.Context) {
	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindingError(err, "Validation failed"), "")
		return
	}
	r, err := h.Service.Submit(c.Request.Context(), rating.SubmitInput{
		ProductID: req.ProductID,
		Rating:    float64(*req.Rating),
		ClientID:  middleware.ClientIP(c),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		fail(c, err, "Failed to submit rating")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Rating submitted successfully",
		"rating": gin.H{
			"id":        r.ID,
			"productId": r.ProductID,
			"rating":    r.Rating,
			"createdAt": r.CreatedAt,
		},
	})
}

// RatingDetailsHandler returns the product's rating overview; 404 only when the product is unknown.
func (h *RatingHandler) RatingDetailsHandler(c *gin.Context) {
	d, err := h.Service.Details(c.Request.Context(), c.Param("productId"))
	if err != nil {
		fail(c, err, "Failed to fetch ratings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"productId":          d.ProductID,
			"productTitle":       d.ProductTitle,
			"averageRating":      d.AverageRating,
			"totalRatings":       d.TotalRatings,
			"ratingDistribution": d.RatingDistribution,
			"recentRatings":      presentRatings(d.RecentRatings),
		},
	})
}

// RatingSummaryHandler always answers 200; failures read as zero ratings.
func (h *RatingHandler) RatingSummaryHandler(c *gin.Context) {
	summary := h.Service.Summary(c.Request.Context(), c.Param("productId"))
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}

// RatingDistributionHandler always answers 200 with all five buckets.
func (h *RatingHandler) RatingDistributionHandler(c *gin.Context) {
	productID := c.Param("productId")
	dist := h.Service.Distribution(c.Request.Context(), productID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"productId": productID, "ratingDistribution": dist},
	})
}

func (h *RatingHandler) RatingStatsHandler(c *gin.Context) {
	st, err := h.Service.Stats(c.Request.Context(), c.Param("productId"))
	if err != nil {
		fail(c, err, "Failed to fetch rating statistics")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"productId":          st.ProductID,
			"productTitle":       st.ProductTitle,
			"averageRating":      st.AverageRating,
			"totalRatings":       st.TotalRatings,
			"ratingDistribution": st.RatingDistribution,
			"ratingBreakdown":    st.RatingBreakdown,
		},
	})
}

func (h *RatingHandler) DeleteRatingHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("ratingId")); err != nil {
		fail(c, err, "Failed to delete rating")
		return
	}
	if identity, ok := middleware.CurrentAdmin(c); ok {
		getLogger(c).Sugar().Infow("Rating deleted", "ratingId", c.Param("ratingId"), "admin", identity.Username)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rating deleted successfully"})
}

