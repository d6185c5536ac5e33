// internal/domain/carrier/service_test.go
package carrier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/order"
)

// stubOrders returns canned partitions and records the filters it was
// called with
type stubOrders struct {
	order.Repository
	pool      []order.Order
	mine      []order.Order
	completed []order.Order

	poolFilter      order.PoolFilter
	completedFilter order.PoolFilter
}

func (s *stubOrders) Pool(filter order.PoolFilter) ([]order.Order, error) {
	s.poolFilter = filter
	return s.pool, nil
}

func (s *stubOrders) AssignedTo(carrierID uint) ([]order.Order, error) {
	return s.mine, nil
}

func (s *stubOrders) CompletedBy(carrierID uint, filter order.PoolFilter) ([]order.Order, error) {
	s.completedFilter = filter
	return s.completed, nil
}

func carrierConfig() *config.Config {
	return &config.Config{
		Pricing: config.PricingConfig{
			CarrierBaseFee:        2500,
			CarrierCommissionRate: 0.05,
		},
	}
}

func intPtr(v int) *int { return &v }

func TestService_GetDashboard(t *testing.T) {
	stub := &stubOrders{
		pool:      []order.Order{{ID: 1, TotalCost: 20000}},
		mine:      []order.Order{{ID: 2, TotalCost: 30000}},
		completed: []order.Order{{ID: 3, TotalCost: 10000}},
	}
	svc := NewService(stub, nil, carrierConfig())

	dash, err := svc.GetDashboard(7, "downtown", WindowDay)
	require.NoError(t, err)

	assert.Equal(t, "downtown", stub.poolFilter.Neighborhood)
	assert.False(t, stub.completedFilter.CompletedSince.IsZero())

	require.Len(t, dash.Pool, 1)
	require.Len(t, dash.Mine, 1)
	require.Len(t, dash.Completed, 1)

	// earnings = base fee + 5% commission
	assert.Equal(t, int64(2500+1000), dash.Pool[0].Earnings)
	assert.Equal(t, int64(2500+1500), dash.Mine[0].Earnings)
	assert.Equal(t, int64(2500+500), dash.Completed[0].Earnings)
}

func TestService_GetDashboard_UnknownWindow(t *testing.T) {
	svc := NewService(&stubOrders{}, nil, carrierConfig())
	_, err := svc.GetDashboard(7, order.RegionAll, "7d")
	assert.ErrorIs(t, err, ErrUnknownWindow)
}

func TestWindow_Since(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	day, err := Window("24h").Since(now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), day)

	month, err := Window("30d").Since(now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -30), month)

	// empty defaults to the daily window
	def, err := Window("").Since(now)
	require.NoError(t, err)
	assert.Equal(t, day, def)
}

func TestService_GetEarnings(t *testing.T) {
	stub := &stubOrders{
		completed: []order.Order{
			{ID: 1, TotalCost: 20000, Rating: intPtr(5)},
			{ID: 2, TotalCost: 10000, Rating: intPtr(4)},
			{ID: 3, TotalCost: 30000},
		},
	}
	svc := NewService(stub, nil, carrierConfig())

	summary, err := svc.GetEarnings(7)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.CompletedCount)
	// (2500+1000) + (2500+500) + (2500+1500)
	assert.Equal(t, int64(10500), summary.TotalEarnings)
	assert.Equal(t, 2, summary.RatedCount)
	assert.InDelta(t, 4.5, summary.AverageRating, 0.001)
}
