// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/cart"
	"github.com/your-org/grocery-backend/internal/domain/order"
	"github.com/your-org/grocery-backend/internal/domain/pricing"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/infrastructure/database/redis"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrMissingAddress = errors.New("delivery address is not set on the profile")
	ErrUnusableCoupon = errors.New("coupon cannot be applied to this cart")
)

// PricingSettings resolves the effective pricing constants. Stored
// system_settings overrides take precedence over the config defaults, so
// admin changes apply to the next quote without a restart.
type PricingSettings interface {
	VATRate() float64
	MinOrderAmount() int64
}

// Service orchestrates checkout: it resolves the cart against the live
// catalog, prices it, persists the order atomically and clears the cart.
// The applied coupon is parked in Redis between "apply" and "place order"
// so pricing previews and the final order agree.
type Service struct {
	carts    *cart.Service
	coupons  *pricing.CouponService
	loyalty  *pricing.LoyaltyService
	orders   *order.Service
	users    *user.Service
	settings PricingSettings
	redis    *redis.Client
	config   *config.Config
}

// NewService creates a new checkout service
func NewService(
	carts *cart.Service,
	coupons *pricing.CouponService,
	loyalty *pricing.LoyaltyService,
	orders *order.Service,
	users *user.Service,
	pricingSettings PricingSettings,
	redisClient *redis.Client,
	cfg *config.Config,
) *Service {
	return &Service{
		carts:    carts,
		coupons:  coupons,
		loyalty:  loyalty,
		orders:   orders,
		users:    users,
		settings: pricingSettings,
		redis:    redisClient,
		config:   cfg,
	}
}

// engine builds a pricing engine from the currently effective constants.
// Built per call so settings overrides are picked up immediately.
func (s *Service) engine() *pricing.Engine {
	return pricing.NewEngine(s.settings.VATRate(), s.settings.MinOrderAmount())
}

// PlaceOrderRequest represents the checkout submission
type PlaceOrderRequest struct {
	RequestedDeliveryDate time.Time `json:"requested_delivery_date" binding:"required"`
	DeliverySlot          string    `json:"delivery_slot" binding:"required"`
	PaymentMethod         string    `json:"payment_method" binding:"required"`
	PriorityLevel         int       `json:"priority_level" binding:"min=0,max=10"`
}

// QuoteResult is a pricing preview of the current cart
type QuoteResult struct {
	Cart   *cart.CartView       `json:"cart"`
	Priced *pricing.PricedOrder `json:"priced"`
	// BelowMinimum is set when the total fails the minimum-order gate;
	// the breakdown is still returned for display
	BelowMinimum   bool  `json:"below_minimum"`
	MinOrderAmount int64 `json:"min_order_amount"`
}

func appliedCouponKey(customerID uint) string {
	return fmt.Sprintf("checkout:coupon:customer:%d", customerID)
}

// ApplyCoupon validates a coupon against the current cart and parks it for
// the next quote and order. Rejections carry the reason in the returned
// status.
func (s *Service) ApplyCoupon(ctx context.Context, customerID uint, code string) (pricing.CouponStatus, error) {
	view, err := s.carts.View(ctx, customerID)
	if err != nil {
		return "", err
	}

	coupon, err := s.coupons.FindByCode(code)
	if err != nil {
		if errors.Is(err, pricing.ErrCouponNotFound) {
			return pricing.CouponNotFound, ErrUnusableCoupon
		}
		return "", err
	}

	if _, status := coupon.Evaluate(view.Subtotal, time.Now().UTC()); status != pricing.CouponApplied {
		return status, ErrUnusableCoupon
	}

	if err := s.redis.Set(ctx, appliedCouponKey(customerID), coupon.Code, s.config.Cart.TTL); err != nil {
		return "", fmt.Errorf("failed to store applied coupon: %w", err)
	}
	return pricing.CouponApplied, nil
}

// RemoveCoupon clears the parked coupon
func (s *Service) RemoveCoupon(ctx context.Context, customerID uint) error {
	return s.redis.Del(ctx, appliedCouponKey(customerID))
}

// appliedCoupon returns the parked coupon, nil when none is applied
func (s *Service) appliedCoupon(ctx context.Context, customerID uint) (*pricing.Coupon, error) {
	code, err := s.redis.Get(ctx, appliedCouponKey(customerID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load applied coupon: %w", err)
	}
	coupon, err := s.coupons.FindByCode(code)
	if err != nil {
		if errors.Is(err, pricing.ErrCouponNotFound) {
			// coupon was deleted after being applied; drop it
			_ = s.redis.Del(ctx, appliedCouponKey(customerID))
			return nil, nil
		}
		return nil, err
	}
	return coupon, nil
}

// Quote prices the current cart without persisting anything
func (s *Service) Quote(ctx context.Context, customerID uint) (*QuoteResult, error) {
	view, err := s.carts.View(ctx, customerID)
	if err != nil {
		return nil, err
	}

	priced, belowMin, err := s.price(ctx, customerID, view)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{
		Cart:           view,
		Priced:         priced,
		BelowMinimum:   belowMin,
		MinOrderAmount: s.settings.MinOrderAmount(),
	}, nil
}

// PlaceOrder turns the cart into a pending order. The order header, its
// line items and the stock decrements commit as one transaction; on any
// failure nothing is visible and the cart is left intact so checkout can
// be retried.
func (s *Service) PlaceOrder(ctx context.Context, customerID uint, req *PlaceOrderRequest) (*order.Order, error) {
	view, err := s.carts.View(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, ErrEmptyCart
	}

	customer, err := s.users.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer.Address == "" || customer.Neighborhood == "" {
		return nil, ErrMissingAddress
	}

	priced, belowMin, err := s.price(ctx, customerID, view)
	if err != nil {
		return nil, err
	}
	if belowMin {
		return nil, pricing.ErrBelowMinimumOrder
	}

	o := &order.Order{
		CustomerID:            customerID,
		PriorityLevel:         req.PriorityLevel,
		Subtotal:              priced.Subtotal,
		VatAmount:             priced.VatAmount,
		DiscountAmount:        priced.CouponDiscount,
		LoyaltyDiscount:       priced.LoyaltyDiscount,
		TotalCost:             priced.Total,
		RequestedDeliveryDate: req.RequestedDeliveryDate,
		DeliverySlot:          req.DeliverySlot,
		DeliveryNeighborhood:  customer.Neighborhood,
		DeliveryAddress:       customer.Address,
		PaymentMethod:         req.PaymentMethod,
	}
	if priced.CouponStatus == pricing.CouponApplied && priced.CouponDiscount > 0 {
		coupon, err := s.appliedCoupon(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if coupon != nil {
			o.CouponCode = coupon.Code
		}
	}
	for _, item := range view.Items {
		o.Items = append(o.Items, order.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.LineTotal,
		})
	}

	if err := s.orders.Create(o); err != nil {
		return nil, err
	}

	// order is committed; cart and parked coupon are session state and
	// failing to clear them only leaves stale Redis keys to expire
	_ = s.carts.Clear(ctx, customerID)
	_ = s.RemoveCoupon(ctx, customerID)

	return o, nil
}

func (s *Service) price(ctx context.Context, customerID uint, view *cart.CartView) (*pricing.PricedOrder, bool, error) {
	coupon, err := s.appliedCoupon(ctx, customerID)
	if err != nil {
		return nil, false, err
	}

	loyalty, err := s.loyalty.Active()
	if err != nil && !errors.Is(err, pricing.ErrLoyaltyNotConfigured) {
		return nil, false, err
	}

	completed, err := s.orders.CompletedCount(customerID)
	if err != nil {
		return nil, false, err
	}

	lines := make([]pricing.Line, 0, len(view.Items))
	for _, item := range view.Items {
		lines = append(lines, pricing.Line{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	priced, err := s.engine().Price(pricing.Quote{
		Lines:           lines,
		Coupon:          coupon,
		Loyalty:         loyalty,
		CompletedOrders: completed,
		Now:             time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, pricing.ErrBelowMinimumOrder) {
			return priced, true, nil
		}
		return nil, false, err
	}
	return priced, false, nil
}
