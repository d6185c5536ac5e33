// internal/domain/pricing/engine_test.go
package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestEngine_Price(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := NewEngine(0.18, 5000)

	coupon := &Coupon{
		Code:               "SAVE10",
		DiscountPercentage: 10,
		MinPurchaseAmount:  10000,
		ValidUntil:         now.Add(24 * time.Hour),
		IsActive:           true,
	}
	loyalty := &LoyaltySetting{
		MinOrders:          intPtr(5),
		DiscountPercentage: 10,
		IsActive:           true,
	}

	t.Run("coupon and loyalty both discount the raw subtotal", func(t *testing.T) {
		priced, err := engine.Price(Quote{
			Lines:           []Line{{ProductID: 1, Quantity: 4, UnitPrice: 5000}},
			Coupon:          coupon,
			Loyalty:         loyalty,
			CompletedOrders: 6,
			Now:             now,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(20000), priced.Subtotal)
		assert.Equal(t, int64(3600), priced.VatAmount)
		assert.Equal(t, int64(2000), priced.CouponDiscount)
		assert.Equal(t, int64(2000), priced.LoyaltyDiscount)
		assert.Equal(t, int64(19600), priced.Total)
		assert.Equal(t, CouponApplied, priced.CouponStatus)
	})

	t.Run("coupon below minimum purchase is rejected with reason", func(t *testing.T) {
		priced, err := engine.Price(Quote{
			Lines:  []Line{{ProductID: 1, Quantity: 1, UnitPrice: 5000}},
			Coupon: coupon,
			Now:    now,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), priced.CouponDiscount)
		assert.Equal(t, CouponBelowMinimum, priced.CouponStatus)
		assert.Equal(t, int64(5900), priced.Total)
	})

	t.Run("expired coupon contributes zero discount", func(t *testing.T) {
		expired := *coupon
		expired.ValidUntil = now.Add(-time.Hour)
		priced, err := engine.Price(Quote{
			Lines:  []Line{{ProductID: 1, Quantity: 4, UnitPrice: 5000}},
			Coupon: &expired,
			Now:    now,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), priced.CouponDiscount)
		assert.Equal(t, CouponExpired, priced.CouponStatus)
	})

	t.Run("loyalty requires the completed-order threshold", func(t *testing.T) {
		priced, err := engine.Price(Quote{
			Lines:           []Line{{ProductID: 1, Quantity: 4, UnitPrice: 5000}},
			Loyalty:         loyalty,
			CompletedOrders: 4,
			Now:             now,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), priced.LoyaltyDiscount)
	})

	t.Run("nil min orders disables loyalty", func(t *testing.T) {
		disabled := &LoyaltySetting{MinOrders: nil, DiscountPercentage: 10, IsActive: true}
		priced, err := engine.Price(Quote{
			Lines:           []Line{{ProductID: 1, Quantity: 4, UnitPrice: 5000}},
			Loyalty:         disabled,
			CompletedOrders: 100,
			Now:             now,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), priced.LoyaltyDiscount)
	})

	t.Run("total below minimum order value is rejected", func(t *testing.T) {
		priced, err := engine.Price(Quote{
			Lines: []Line{{ProductID: 1, Quantity: 1, UnitPrice: 4000}},
			Now:   now,
		})
		assert.ErrorIs(t, err, ErrBelowMinimumOrder)
		// the breakdown is still returned for display
		assert.Equal(t, int64(4000), priced.Subtotal)
		assert.Equal(t, int64(4720), priced.Total)
	})

	t.Run("total is floored at zero", func(t *testing.T) {
		full := &Coupon{
			Code:               "FREE",
			DiscountPercentage: 100,
			ValidUntil:         now.Add(time.Hour),
			IsActive:           true,
		}
		allLoyalty := &LoyaltySetting{MinOrders: intPtr(1), DiscountPercentage: 100, IsActive: true}
		priced, err := engine.Price(Quote{
			Lines:           []Line{{ProductID: 1, Quantity: 1, UnitPrice: 1000}},
			Coupon:          full,
			Loyalty:         allLoyalty,
			CompletedOrders: 10,
			Now:             now,
		})
		assert.ErrorIs(t, err, ErrBelowMinimumOrder)
		assert.Equal(t, int64(0), priced.Total)
	})
}

func TestCoupon_Evaluate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		coupon       Coupon
		subtotal     int64
		wantDiscount int64
		wantStatus   CouponStatus
	}{
		{
			name: "valid coupon above minimum",
			coupon: Coupon{
				DiscountPercentage: 20,
				MinPurchaseAmount:  1000,
				ValidUntil:         now.Add(time.Hour),
				IsActive:           true,
			},
			subtotal:     10000,
			wantDiscount: 2000,
			wantStatus:   CouponApplied,
		},
		{
			name: "inactive coupon",
			coupon: Coupon{
				DiscountPercentage: 20,
				ValidUntil:         now.Add(time.Hour),
				IsActive:           false,
			},
			subtotal:   10000,
			wantStatus: CouponExpired,
		},
		{
			name: "boundary subtotal equals minimum purchase",
			coupon: Coupon{
				DiscountPercentage: 10,
				MinPurchaseAmount:  10000,
				ValidUntil:         now.Add(time.Hour),
				IsActive:           true,
			},
			subtotal:     10000,
			wantDiscount: 1000,
			wantStatus:   CouponApplied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, status := tt.coupon.Evaluate(tt.subtotal, now)
			assert.Equal(t, tt.wantDiscount, discount)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCode("  save10 "))
	assert.Equal(t, "SAVE10", NormalizeCode("Save10"))
}
