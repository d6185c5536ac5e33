// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// Item is one cart line. A cart holds at most one line per product.
type Item struct {
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Cart is the per-customer shopping cart. It lives in Redis for the
// duration of the customer's session and is cleared on checkout. One cart
// belongs to exactly one customer; it is never shared.
type Cart struct {
	CustomerID uint      `json:"customer_id"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewCart creates an empty cart for a customer
func NewCart(customerID uint) *Cart {
	now := time.Now().UTC()
	return &Cart{
		CustomerID: customerID,
		Items:      []Item{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Add puts quantity units of a product in the cart. Adding a product that
// is already present increments its line instead of duplicating it.
func (c *Cart) Add(productID uint, quantity int) {
	if quantity <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.UpdatedAt = time.Now().UTC()
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	})
	c.UpdatedAt = time.Now().UTC()
}

// SetQuantity replaces a line's quantity. Zero or below removes the line.
// Returns false if the product is not in the cart.
func (c *Cart) SetQuantity(productID uint, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// Remove drops a line entirely
func (c *Cart) Remove(productID uint) bool {
	return c.SetQuantity(productID, 0)
}

// Quantity returns the quantity of a product, zero if absent
func (c *Cart) Quantity(productID uint) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return c.Items[i].Quantity
		}
	}
	return 0
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
