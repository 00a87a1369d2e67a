// File: handlers/contact.go
package handlers

import (
	"net/http"

	"dreamdecol/services/contact"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactHandler struct {
	Service contact.ContactService
}

func NewContactHandler(svc contact.ContactService) *ContactHandler {
	return &ContactHandler{Service: svc}
}

type contactRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Message    string `json:"message" binding:"required"`
	ProductRef string `json:"productRef" binding:"omitempty,objectid"`
}

func (h *ContactHandler) CreateContactHandler(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindingError(err, "Validation error"), "")
		return
	}
	msg, err := h.Service.Create(c.Request.Context(), contact.CreateInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		ProductRef: req.ProductRef,
	})
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	getLogger(c).Info("Contact message received", zap.String("messageId", msg.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        "Contact message submitted successfully",
		"contactMessage": msg,
	})
}

func (h *ContactHandler) ListContactsHandler(c *gin.Context) {
	messages, err := h.Service.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(messages), "messages": messages})
}

func (h *ContactHandler) GetContactHandler(c *gin.Context) {
	msg, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func (h *ContactHandler) MarkReadHandler(c *gin.Context) {
	h.setRead(c, true)
}

func (h *ContactHandler) MarkUnreadHandler(c *gin.Context) {
	h.setRead(c, false)
}

func (h *ContactHandler) setRead(c *gin.Context, read bool) {
	msg, err := h.Service.MarkRead(c.Request.Context(), c.Param("id"), read)
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func (h *ContactHandler) DeleteContactHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Contact message deleted successfully"})
}
