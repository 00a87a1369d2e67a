// File: handlers/admin.go
package handlers

import (
	"net/http"

	"dreamdecol/middleware"
	"dreamdecol/models"
	"dreamdecol/services/admin"
	"dreamdecol/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves back-office authentication and account management.
type AdminHandler struct {
	Service admin.AdminService
}

func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=superadmin admin moderator"`
}

func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindingError(err, "Validation error"), "")
		return
	}
	auth, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     auth.Token,
		"expiresAt": auth.ExpiresAt,
		"user":      auth.User,
	})
}

func (h *AdminHandler) RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindingError(err, "Validation error"), "")
		return
	}
	user, err := h.Service.Register(c.Request.Context(), admin.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": presentAdmin(user)})
}

// LogoutHandler revokes the presented token until it would have expired.
func (h *AdminHandler) LogoutHandler(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

func (h *AdminHandler) MeHandler(c *gin.Context) {
	identity, ok := middleware.CurrentAdmin(c)
	if !ok {
		fail(c, utils.NewUnauthorizedError(admin.MsgNoToken), "")
		return
	}
	user, err := h.Service.Get(c.Request.Context(), identity.ID)
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": presentAdmin(user)})
}

func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.Service.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	views := make([]adminUserView, 0, len(users))
	for i := range users {
		views = append(views, presentAdmin(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(views), "users": views})
}

func (h *AdminHandler) GetUserHandler(c *gin.Context) {
	user, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": presentAdmin(user)})
}

func (h *AdminHandler) UpdateUserHandler(c *gin.Context) {
	identity, _ := middleware.CurrentAdmin(c)
	var upd models.AdminUserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		fail(c, bindingError(err, "Validation error"), "")
		return
	}
	user, err := h.Service.Update(c.Request.Context(), *identity, c.Param("id"), upd)
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": presentAdmin(user)})
}

func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	identity, _ := middleware.CurrentAdmin(c)
	if err := h.Service.Delete(c.Request.Context(), *identity, c.Param("id")); err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}
