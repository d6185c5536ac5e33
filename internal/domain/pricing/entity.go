// internal/domain/pricing/entity.go
package pricing

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// CouponStatus is the outcome of applying a coupon code to a cart
type CouponStatus string

const (
	CouponApplied      CouponStatus = "applied"
	CouponNotFound     CouponStatus = "not_found"
	CouponExpired      CouponStatus = "expired"
	CouponBelowMinimum CouponStatus = "below_minimum"
)

// Coupon is a percentage discount gated on a minimum purchase amount.
// Codes are unique case-insensitively; they are stored uppercased.
type Coupon struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	Code               string         `json:"code" gorm:"uniqueIndex;not null;size:50"`
	DiscountPercentage int            `json:"discount_percentage" gorm:"not null"`
	MinPurchaseAmount  int64          `json:"min_purchase_amount" gorm:"not null;default:0"`
	ValidUntil         time.Time      `json:"valid_until" gorm:"not null"`
	IsActive           bool           `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate normalizes the code before saving
func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	c.Code = NormalizeCode(c.Code)
	return nil
}

// NormalizeCode canonicalizes a coupon code for case-insensitive matching
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate checks the coupon against a subtotal at a point in time and
// returns the discount it grants, zero with a reason code if it does not
// apply.
func (c *Coupon) Evaluate(subtotal int64, now time.Time) (int64, CouponStatus) {
	if !c.IsActive || now.After(c.ValidUntil) {
		return 0, CouponExpired
	}
	if subtotal < c.MinPurchaseAmount {
		return 0, CouponBelowMinimum
	}
	return subtotal * int64(c.DiscountPercentage) / 100, CouponApplied
}

// LoyaltySetting is the process-wide loyalty program configuration. At most
// one row is active at a time; a null MinOrders disables the program even
// when the row is active.
type LoyaltySetting struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	MinOrders          *int      `json:"min_orders"`
	DiscountPercentage int       `json:"discount_percentage" gorm:"not null"`
	IsActive           bool      `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Enabled reports whether the loyalty program is in effect
func (l *LoyaltySetting) Enabled() bool {
	return l != nil && l.IsActive && l.MinOrders != nil
}

// Discount returns the loyalty discount for a customer with the given
// completed-order count, zero if the program does not apply.
func (l *LoyaltySetting) Discount(subtotal int64, completedOrders int) int64 {
	if !l.Enabled() || completedOrders < *l.MinOrders {
		return 0
	}
	return subtotal * int64(l.DiscountPercentage) / 100
}
