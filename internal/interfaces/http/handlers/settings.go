// internal/interfaces/http/handlers/settings.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/settings"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SettingsHandler handles system settings and user administration
type SettingsHandler struct {
	settingsService *settings.Service
	userService     *user.Service
	config          *config.Config
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(db *gorm.DB, cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settings.NewService(db, cfg),
		userService:     user.NewService(db, cfg),
		config:          cfg,
	}
}

// GetSettings handles GET /admin/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	list, err := h.settingsService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve settings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Settings retrieved successfully",
		"data":    list,
	})
}

// SetSetting handles PUT /admin/settings/:key
func (h *SettingsHandler) SetSetting(c *gin.Context) {
	key := c.Param("key")

	var req struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Value required",
		})
		return
	}

	setting, err := h.settingsService.Set(key, req.Value)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save setting",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Setting saved successfully",
		"data":    setting,
	})
}

// DeleteSetting handles DELETE /admin/settings/:key
func (h *SettingsHandler) DeleteSetting(c *gin.Context) {
	if err := h.settingsService.Delete(c.Param("key")); err != nil {
		if errors.Is(err, settings.ErrSettingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete setting",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Setting deleted successfully",
	})
}

// GetUsers handles GET /admin/users
func (h *SettingsHandler) GetUsers(c *gin.Context) {
	role := user.Role(c.Query("role"))
	if role != "" && !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.userService.ListByRole(role, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve users",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users retrieved successfully",
		"data": gin.H{
			"users": users,
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// SetUserActive handles PUT /admin/users/:id/active
func (h *SettingsHandler) SetUserActive(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	// admins cannot deactivate themselves
	if selfID, ok := middleware.GetUserIDFromContext(c); ok && selfID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own account status"})
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_active required"})
		return
	}

	if err := h.userService.SetActive(id, *req.IsActive); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
	})
}
