// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/analytics"
	"gorm.io/gorm"
)

// AnalyticsHandler handles admin reporting endpoints
type AnalyticsHandler struct {
	analyticsService *analytics.Service
	config           *config.Config
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(db *gorm.DB, cfg *config.Config) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analytics.NewService(db),
		config:           cfg,
	}
}

// GetRevenueByCategory handles GET /admin/reports/revenue/category
func (h *AnalyticsHandler) GetRevenueByCategory(c *gin.Context) {
	rows, err := h.analyticsService.RevenueByCategory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute report",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report computed successfully",
		"data":    rows,
	})
}

// GetRevenueByBucket handles GET /admin/reports/revenue/over-time
func (h *AnalyticsHandler) GetRevenueByBucket(c *gin.Context) {
	bucket := c.DefaultQuery("bucket", "day")

	rows, err := h.analyticsService.RevenueByBucket(bucket)
	if err != nil {
		if errors.Is(err, analytics.ErrBadBucket) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Bucket must be day, week or month",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute report",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report computed successfully",
		"data":    rows,
	})
}

// GetRevenueByAmountRange handles GET /admin/reports/revenue/amount-range
func (h *AnalyticsHandler) GetRevenueByAmountRange(c *gin.Context) {
	rows, err := h.analyticsService.RevenueByAmountRange()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute report",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report computed successfully",
		"data":    rows,
	})
}

// GetCarrierPerformance handles GET /admin/reports/carriers
func (h *AnalyticsHandler) GetCarrierPerformance(c *gin.Context) {
	rows, err := h.analyticsService.CarrierPerformanceReport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute report",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report computed successfully",
		"data":    rows,
	})
}

// GetMostSoldProducts handles GET /admin/reports/products/top
func (h *AnalyticsHandler) GetMostSoldProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.analyticsService.MostSoldProducts(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute report",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report computed successfully",
		"data":    rows,
	})
}

// GetMostActiveCustomers handles GET /admin/reports/customers/top
func (h *AnalyticsHandler) GetMostActiveCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.analyticsService.MostActiveCustomers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute report",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report computed successfully",
		"data":    rows,
	})
}
