// internal/domain/pricing/engine.go
package pricing

import (
	"errors"
	"math"
	"time"
)

// ErrBelowMinimumOrder is returned when the priced total falls under the
// configured minimum order value. Orders that fail this gate are never
// persisted.
var ErrBelowMinimumOrder = errors.New("order total is below the minimum order value")

// Line is one priced cart line, a snapshot of quantity times the product's
// effective unit price at quote time.
type Line struct {
	ProductID uint
	Name      string
	Quantity  int
	UnitPrice int64
}

// Total returns the line amount
func (l Line) Total() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Quote holds the inputs to a pricing computation. Everything the engine
// needs is supplied up front so the result is reproducible.
type Quote struct {
	Lines           []Line
	Coupon          *Coupon
	Loyalty         *LoyaltySetting
	CompletedOrders int
	Now             time.Time
}

// PricedOrder is the result of pricing a quote
type PricedOrder struct {
	Subtotal        int64        `json:"subtotal"`
	VatAmount       int64        `json:"vat_amount"`
	CouponDiscount  int64        `json:"coupon_discount"`
	LoyaltyDiscount int64        `json:"loyalty_discount"`
	Total           int64        `json:"total"`
	CouponStatus    CouponStatus `json:"coupon_status,omitempty"`
}

// Engine computes order totals. It is pure: no clock, no storage, only the
// configured rates.
type Engine struct {
	vatRate        float64
	minOrderAmount int64
}

// NewEngine creates a pricing engine with the given VAT rate and minimum
// order value
func NewEngine(vatRate float64, minOrderAmount int64) *Engine {
	return &Engine{
		vatRate:        vatRate,
		minOrderAmount: minOrderAmount,
	}
}

// Price computes the order total for a quote.
//
// VAT is charged on the subtotal. Coupon and loyalty discounts are
// independent: each is a percentage of the raw subtotal, not of the other
// discount's result. The total is floored at zero. A total below the
// minimum order value returns ErrBelowMinimumOrder alongside the priced
// breakdown so callers can still surface the numbers.
func (e *Engine) Price(q Quote) (*PricedOrder, error) {
	priced := &PricedOrder{}
	for _, line := range q.Lines {
		priced.Subtotal += line.Total()
	}

	priced.VatAmount = int64(math.Round(float64(priced.Subtotal) * e.vatRate))

	if q.Coupon != nil {
		priced.CouponDiscount, priced.CouponStatus = q.Coupon.Evaluate(priced.Subtotal, q.Now)
	}
	priced.LoyaltyDiscount = q.Loyalty.Discount(priced.Subtotal, q.CompletedOrders)

	priced.Total = priced.Subtotal + priced.VatAmount - priced.CouponDiscount - priced.LoyaltyDiscount
	if priced.Total < 0 {
		priced.Total = 0
	}

	if priced.Total < e.minOrderAmount {
		return priced, ErrBelowMinimumOrder
	}
	return priced, nil
}

// MinOrderAmount exposes the configured floor for display purposes
func (e *Engine) MinOrderAmount() int64 {
	return e.minOrderAmount
}
