// File: handlers/activity.go
package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"dreamdecol/services/activity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MediaFileField is the multipart field carrying an activity upload.
const MediaFileField = "mediaFile"

type ActivityHandler struct {
	Service activity.ActivityService
}

func NewActivityHandler(svc activity.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: svc}
}

// activityRequest binds from JSON or form bodies.
type activityRequest struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	MediaType   *string `json:"mediaType" form:"mediaType" binding:"omitempty,oneof=image video"`
	MediaURL    *string `json:"mediaUrl" form:"mediaUrl" binding:"omitempty,mediaurl"`
	Date        *string `json:"date" form:"date"`
}

func (r activityRequest) input() activity.Input {
	return activity.Input{
		Title:       r.Title,
		Description: r.Description,
		MediaType:   r.MediaType,
		MediaURL:    r.MediaURL,
		Date:        r.Date,
	}
}

// mediaFile returns the optional upload; a missing field is not an error.
func mediaFile(c *gin.Context) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(MediaFileField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return fh, err
}

func (h *ActivityHandler) ListActivitiesHandler(c *gin.Context) {
	activities, err := h.Service.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(activities), "activities": activities})
}

func (h *ActivityHandler) RangeActivitiesHandler(c *gin.Context) {
	activities, err := h.Service.Range(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(activities), "activities": activities})
}

func (h *ActivityHandler) SearchActivitiesHandler(c *gin.Context) {
	activities, err := h.Service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(activities), "activities": activities})
}

func (h *ActivityHandler) CreateActivityHandler(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, bindingError(err, "Validation error"), "")
		return
	}
	fh, err := mediaFile(c)
	if err != nil {
		fail(c, bindingError(err, "Invalid file upload"), "")
		return
	}
	created, err := h.Service.Create(c.Request.Context(), req.input(), fh)
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	getLogger(c).Info("Activity created", zap.String("activityId", created.ID.Hex()), zap.String("mediaType", created.MediaType))
	c.JSON(http.StatusCreated, gin.H{"success": true, "activity": created})
}

func (h *ActivityHandler) UpdateActivityHandler(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, bindingError(err, "Validation error"), "")
		return
	}
	updated, err := h.Service.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "activity": updated})
}

func (h *ActivityHandler) DeleteActivityHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Activity deleted"})
}
