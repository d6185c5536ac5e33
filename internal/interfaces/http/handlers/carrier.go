// internal/interfaces/http/handlers/carrier.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/carrier"
	"github.com/your-org/grocery-backend/internal/domain/order"
	"github.com/your-org/grocery-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CarrierHandler handles the carrier dashboard and lifecycle endpoints
type CarrierHandler struct {
	carrierService *carrier.Service
	orderService   *order.Service
	config         *config.Config
}

// NewCarrierHandler creates a new carrier handler
func NewCarrierHandler(db *gorm.DB, cfg *config.Config) *CarrierHandler {
	repo := order.NewRepository(db)
	return &CarrierHandler{
		carrierService: carrier.NewService(repo, db, cfg),
		orderService:   order.NewService(repo, cfg),
		config:         cfg,
	}
}

// GetDashboard handles GET /carrier/dashboard
func (h *CarrierHandler) GetDashboard(c *gin.Context) {
	carrierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	region := c.DefaultQuery("region", order.RegionAll)
	window := carrier.Window(c.DefaultQuery("window", string(carrier.WindowDay)))

	dashboard, err := h.carrierService.GetDashboard(carrierID, region, window)
	if err != nil {
		if errors.Is(err, carrier.ErrUnknownWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Window must be 24h or 30d"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build dashboard",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard retrieved successfully",
		"data":    dashboard,
	})
}

// GetRegions handles GET /carrier/regions
func (h *CarrierHandler) GetRegions(c *gin.Context) {
	regions, err := h.carrierService.Regions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list regions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Regions retrieved successfully",
		"data":    regions,
	})
}

// GetEarnings handles GET /carrier/earnings
func (h *CarrierHandler) GetEarnings(c *gin.Context) {
	carrierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	summary, err := h.carrierService.GetEarnings(carrierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute earnings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Earnings retrieved successfully",
		"data":    summary,
	})
}

// ClaimOrder handles POST /carrier/orders/:id/claim
func (h *CarrierHandler) ClaimOrder(c *gin.Context) {
	carrierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	claimed, err := h.orderService.Claim(orderID, carrierID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, order.ErrAlreadyClaimed):
			c.JSON(http.StatusConflict, gin.H{"error": "Order already claimed by another carrier"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order claimed successfully",
		"data":    claimed,
	})
}

// ReleaseOrder handles POST /carrier/orders/:id/release
func (h *CarrierHandler) ReleaseOrder(c *gin.Context) {
	carrierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	if err := h.orderService.Release(orderID, carrierID); err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, order.ErrNotAssignee):
			c.JSON(http.StatusConflict, gin.H{"error": "Order is not assigned to you"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order released back to the pool",
	})
}

// CompleteOrder handles POST /carrier/orders/:id/complete
func (h *CarrierHandler) CompleteOrder(c *gin.Context) {
	carrierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	completed, err := h.orderService.Complete(orderID, carrierID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, order.ErrNotAssignee):
			c.JSON(http.StatusConflict, gin.H{"error": "Order is not assigned to you"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order completed successfully",
		"data":    completed,
	})
}
