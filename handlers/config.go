// File: handlers/config.go
package handlers

import (
	"net/http"
	"sort"

	"dreamdecol/models"
	"dreamdecol/services/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConfigHandler struct {
	Service settings.SettingsService
}

func NewConfigHandler(svc settings.SettingsService) *ConfigHandler {
	return &ConfigHandler{Service: svc}
}

type createConfigRequest struct {
	Key         string      `json:"key"`
	Value       interface{} `json:"value"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
}

type updateConfigRequest struct {
	Value       interface{} `json:"value"`
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	IsActive    *bool       `json:"isActive"`
}

type publicConfig struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

func (h *ConfigHandler) ListConfigsHandler(c *gin.Context) {
	configs, err := h.Service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, err, "Failed to fetch configurations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "configurations": configs})
}

func (h *ConfigHandler) GetConfigHandler(c *gin.Context) {
	cfg, err := h.Service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		fail(c, err, "Failed to fetch configuration")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "configuration": cfg})
}

func (h *ConfigHandler) CreateConfigHandler(c *gin.Context) {
	var req createConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindingError(err, "Key, value, and category are required"), "")
		return
	}
	cfg, err := h.Service.Create(c.Request.Context(), settings.CreateInput{
		Key:         req.Key,
		Value:       req.Value,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		fail(c, err, "Failed to create configuration")
		return
	}
	getLogger(c).Info("Configuration created", zap.String("key", cfg.Key))
	c.JSON(http.StatusCreated, gin.H{"success": true, "configuration": cfg})
}

func (h *ConfigHandler) UpdateConfigHandler(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindingError(err, "Value is required"), "")
		return
	}
	cfg, err := h.Service.Update(c.Request.Context(), c.Param("key"), models.ConfigurationUpdate{
		Value:       req.Value,
		Description: req.Description,
		Category:    req.Category,
		IsActive:    req.IsActive,
	})
	if err != nil {
		fail(c, err, "Failed to update configuration")
		return
	}
	getLogger(c).Info("Configuration updated", zap.String("key", cfg.Key))
	c.JSON(http.StatusOK, gin.H{"success": true, "configuration": cfg})
}

func (h *ConfigHandler) DeleteConfigHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("key")); err != nil {
		fail(c, err, "Failed to delete configuration")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Configuration deleted successfully"})
}

// PublicConfigHandler exposes one category's key/value pairs without authentication.
func (h *ConfigHandler) PublicConfigHandler(c *gin.Context) {
	category := c.Param("category")
	values, err := h.Service.Public(c.Request.Context(), category)
	if err != nil {
		fail(c, err, "Failed to fetch public configurations")
		return
	}
	out := make([]publicConfig, 0, len(values))
	for k, v := range values {
		out = append(out, publicConfig{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	c.JSON(http.StatusOK, gin.H{"success": true, "category": category, "configurations": out})
}

func (h *ConfigHandler) ResetConfigHandler(c *gin.Context) {
	if err := h.Service.Reset(c.Request.Context()); err != nil {
		fail(c, err, "Failed to reset configurations")
		return
	}
	getLogger(c).Warn("Configurations reset to defaults")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Configurations reset to defaults"})
}
