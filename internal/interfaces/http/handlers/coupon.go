// internal/interfaces/http/handlers/coupon.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/pricing"
	"gorm.io/gorm"
)

// CouponHandler handles coupon administration endpoints
type CouponHandler struct {
	couponService *pricing.CouponService
	config        *config.Config
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(db *gorm.DB, cfg *config.Config) *CouponHandler {
	return &CouponHandler{
		couponService: pricing.NewCouponService(db),
		config:        cfg,
	}
}

// GetCoupons handles GET /admin/coupons
func (h *CouponHandler) GetCoupons(c *gin.Context) {
	coupons, err := h.couponService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve coupons",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupons retrieved successfully",
		"data":    coupons,
	})
}

// CreateCoupon handles POST /admin/coupons
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req pricing.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	coupon, err := h.couponService.Create(&req)
	if err != nil {
		if errors.Is(err, pricing.ErrCouponCodeTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Coupon code already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create coupon",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon created successfully",
		"data":    coupon,
	})
}

// UpdateCoupon handles PUT /admin/coupons/:id
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	var req pricing.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	coupon, err := h.couponService.Update(id, &req)
	if err != nil {
		if errors.Is(err, pricing.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update coupon",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon updated successfully",
		"data":    coupon,
	})
}

// DeleteCoupon handles DELETE /admin/coupons/:id
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	if err := h.couponService.Delete(id); err != nil {
		if errors.Is(err, pricing.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete coupon",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon deleted successfully",
	})
}

// LoyaltyHandler handles loyalty program administration
type LoyaltyHandler struct {
	loyaltyService *pricing.LoyaltyService
	config         *config.Config
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(db *gorm.DB, cfg *config.Config) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService: pricing.NewLoyaltyService(db),
		config:         cfg,
	}
}

// GetLoyalty handles GET /admin/loyalty
func (h *LoyaltyHandler) GetLoyalty(c *gin.Context) {
	setting, err := h.loyaltyService.Active()
	if err != nil {
		if errors.Is(err, pricing.ErrLoyaltyNotConfigured) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Loyalty program is not configured",
				"data":    nil,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve loyalty settings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Loyalty settings retrieved successfully",
		"data":    setting,
	})
}

// SetLoyalty handles PUT /admin/loyalty
func (h *LoyaltyHandler) SetLoyalty(c *gin.Context) {
	var req pricing.SetLoyaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	setting, err := h.loyaltyService.Set(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update loyalty settings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Loyalty settings updated successfully",
		"data":    setting,
	})
}

// DisableLoyalty handles DELETE /admin/loyalty
func (h *LoyaltyHandler) DisableLoyalty(c *gin.Context) {
	if err := h.loyaltyService.Disable(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to disable loyalty program",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Loyalty program disabled",
	})
}
