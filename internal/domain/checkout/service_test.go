// internal/domain/checkout/service_test.go
package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/grocery-backend/internal/domain/pricing"
)

// stubSettings stands in for the settings store so tests can flip the
// effective constants without a database.
type stubSettings struct {
	vatRate        float64
	minOrderAmount int64
}

func (s stubSettings) VATRate() float64      { return s.vatRate }
func (s stubSettings) MinOrderAmount() int64 { return s.minOrderAmount }

func TestEngineUsesEffectiveSettings(t *testing.T) {
	// 40.00 subtotal prices to 47.20 with 18% VAT.
	quote := pricing.Quote{
		Lines: []pricing.Line{
			{ProductID: 1, Name: "Tomato", Quantity: 4, UnitPrice: 1000},
		},
		Now: time.Now().UTC(),
	}

	t.Run("default minimum rejects", func(t *testing.T) {
		svc := &Service{settings: stubSettings{vatRate: 0.18, minOrderAmount: 5000}}

		priced, err := svc.engine().Price(quote)
		require.ErrorIs(t, err, pricing.ErrBelowMinimumOrder)
		assert.Equal(t, int64(4720), priced.Total)
	})

	t.Run("stored override admits the same cart", func(t *testing.T) {
		svc := &Service{settings: stubSettings{vatRate: 0.18, minOrderAmount: 3000}}

		priced, err := svc.engine().Price(quote)
		require.NoError(t, err)
		assert.Equal(t, int64(4720), priced.Total)
	})

	t.Run("vat override changes the breakdown", func(t *testing.T) {
		svc := &Service{settings: stubSettings{vatRate: 0.08, minOrderAmount: 3000}}

		priced, err := svc.engine().Price(quote)
		require.NoError(t, err)
		assert.Equal(t, int64(320), priced.VatAmount)
		assert.Equal(t, int64(4320), priced.Total)
	})
}
