// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"github.com/your-org/grocery-backend/internal/infrastructure/database/redis"
)

var (
	ErrItemNotFound       = errors.New("item not in cart")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("requested quantity exceeds available stock")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
)

// Service handles cart business logic. Carts are stored in Redis keyed by
// customer and expire after the configured TTL of inactivity.
type Service struct {
	redis   *redis.Client
	catalog *catalog.Service
	config  *config.Config
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client, catalogService *catalog.Service, cfg *config.Config) *Service {
	return &Service{
		redis:   redisClient,
		catalog: catalogService,
		config:  cfg,
	}
}

// CartView is a cart with product details and pricing resolved
type CartView struct {
	CustomerID uint           `json:"customer_id"`
	Items      []CartItemView `json:"items"`
	Subtotal   int64          `json:"subtotal"`
}

// CartItemView is a cart line joined with its live product data
type CartItemView struct {
	ProductID    uint                `json:"product_id"`
	Name         string              `json:"name"`
	Type         catalog.ProductType `json:"type"`
	Quantity     int                 `json:"quantity"`
	UnitPrice    int64               `json:"unit_price"`
	LineTotal    int64               `json:"line_total"`
	LowStock     bool                `json:"low_stock"`
	MaxAvailable int                 `json:"max_available"`
}

func cartKey(customerID uint) string {
	return fmt.Sprintf("cart:customer:%d", customerID)
}

// Get returns the customer's cart, creating an empty one if none exists
func (s *Service) Get(ctx context.Context, customerID uint) (*Cart, error) {
	var c Cart
	err := s.redis.GetJSON(ctx, cartKey(customerID), &c)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return NewCart(customerID), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &c, nil
}

// AddItem adds a product to the customer's cart after validating that the
// product exists, is active and has enough stock to cover the resulting
// line quantity.
func (s *Service) AddItem(ctx context.Context, customerID, productID uint, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.Get(productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}

	c, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if c.Quantity(productID)+quantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	c.Add(productID, quantity)
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateItem sets the quantity of a cart line. Zero removes the line.
func (s *Service) UpdateItem(ctx context.Context, customerID, productID uint, quantity int) (*Cart, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if quantity > 0 {
		product, err := s.catalog.Get(productID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, ErrProductUnavailable
		}
		if quantity > product.Stock {
			return nil, ErrInsufficientStock
		}
	}

	if !c.SetQuantity(productID, quantity) {
		return nil, ErrItemNotFound
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem drops a line from the cart
func (s *Service) RemoveItem(ctx context.Context, customerID, productID uint) (*Cart, error) {
	c, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !c.Remove(productID) {
		return nil, ErrItemNotFound
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the customer's cart. Called after a successful checkout.
func (s *Service) Clear(ctx context.Context, customerID uint) error {
	if err := s.redis.Del(ctx, cartKey(customerID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// View resolves the cart against the live catalog. Lines whose product has
// been deactivated or deleted since they were added are dropped from the
// view so a stale cart never blocks checkout.
func (s *Service) View(ctx context.Context, customerID uint) (*CartView, error) {
	c, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		CustomerID: customerID,
		Items:      []CartItemView{},
	}
	for _, item := range c.Items {
		product, err := s.catalog.Get(item.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		if !product.IsActive {
			continue
		}
		unitPrice := product.CurrentPrice
		view.Items = append(view.Items, CartItemView{
			ProductID:    product.ID,
			Name:         product.Name,
			Type:         product.Type,
			Quantity:     item.Quantity,
			UnitPrice:    unitPrice,
			LineTotal:    unitPrice * int64(item.Quantity),
			LowStock:     product.LowStock,
			MaxAvailable: product.Stock,
		})
		view.Subtotal += unitPrice * int64(item.Quantity)
	}
	return view, nil
}

func (s *Service) save(ctx context.Context, c *Cart) error {
	if err := s.redis.SetJSON(ctx, cartKey(c.CustomerID), c, s.config.Cart.TTL); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
