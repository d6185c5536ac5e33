// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/cart"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"github.com/your-org/grocery-backend/internal/domain/checkout"
	"github.com/your-org/grocery-backend/internal/domain/order"
	"github.com/your-org/grocery-backend/internal/domain/pricing"
	"github.com/your-org/grocery-backend/internal/domain/settings"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/infrastructure/database/redis"
	"github.com/your-org/grocery-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CheckoutHandler {
	catalogService := catalog.NewService(db, cfg)
	cartService := cart.NewService(redisClient, catalogService, cfg)
	orderService := order.NewService(order.NewRepository(db), cfg)

	return &CheckoutHandler{
		checkoutService: checkout.NewService(
			cartService,
			pricing.NewCouponService(db),
			pricing.NewLoyaltyService(db),
			orderService,
			user.NewService(db, cfg),
			settings.NewService(db, cfg),
			redisClient,
			cfg,
		),
		config: cfg,
	}
}

// GetQuote handles GET /checkout/quote
func (h *CheckoutHandler) GetQuote(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	quote, err := h.checkoutService.Quote(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to price cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quote computed successfully",
		"data":    quote,
	})
}

// ApplyCoupon handles POST /checkout/coupon
func (h *CheckoutHandler) ApplyCoupon(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Coupon code required",
		})
		return
	}

	status, err := h.checkoutService.ApplyCoupon(c.Request.Context(), userID, req.Code)
	if err != nil {
		if errors.Is(err, checkout.ErrUnusableCoupon) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Coupon cannot be applied",
				"status": status,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to apply coupon",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon applied",
		"status":  status,
	})
}

// RemoveCoupon handles DELETE /checkout/coupon
func (h *CheckoutHandler) RemoveCoupon(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.checkoutService.RemoveCoupon(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove coupon",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon removed",
	})
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	placed, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, checkout.ErrMissingAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Set a delivery address on your profile first"})
		case errors.Is(err, pricing.ErrBelowMinimumOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order total is below the minimum order value"})
		case errors.Is(err, catalog.ErrOutOfStock):
			c.JSON(http.StatusConflict, gin.H{"error": "One or more products are out of stock"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}
