// internal/domain/carrier/service.go
package carrier

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/order"
	"gorm.io/gorm"
)

// ErrUnknownWindow is returned for an unrecognized completed-orders window
var ErrUnknownWindow = errors.New("unknown dashboard window")

// Window selects the recency bound for the completed partition
type Window string

const (
	WindowDay   Window = "24h"
	WindowMonth Window = "30d"
)

// Since converts the window into a cutoff relative to now
func (w Window) Since(now time.Time) (time.Time, error) {
	switch w {
	case WindowDay, "":
		return now.Add(-24 * time.Hour), nil
	case WindowMonth:
		return now.AddDate(0, 0, -30), nil
	}
	return time.Time{}, ErrUnknownWindow
}

// Service serves carrier-facing read models: the dashboard partitions and
// the carrier's earnings and performance summary. It is read-only; all
// state transitions go through the order service.
type Service struct {
	orders order.Repository
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new carrier service
func NewService(orders order.Repository, db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		orders: orders,
		db:     db,
		config: cfg,
	}
}

// DashboardOrder is an order annotated with the carrier's derived earnings
type DashboardOrder struct {
	order.Order
	Earnings int64 `json:"earnings"`
}

// Dashboard is the carrier's three-way partition of the order set. An
// order is in Pool iff pending and unassigned, in Mine iff assigned to
// this carrier, in Completed iff this carrier delivered it within the
// selected window.
type Dashboard struct {
	Pool      []DashboardOrder `json:"pool"`
	Mine      []DashboardOrder `json:"mine"`
	Completed []DashboardOrder `json:"completed"`
}

// EarningsSummary aggregates a carrier's delivery history
type EarningsSummary struct {
	CompletedCount int     `json:"completed_count"`
	TotalEarnings  int64   `json:"total_earnings"`
	AverageRating  float64 `json:"average_rating"`
	RatedCount     int     `json:"rated_count"`
}

// GetDashboard assembles the carrier's three partitions. The pool is
// ordered priority descending then order time ascending, so the oldest
// urgent orders surface first. Region "all" (or empty) disables the
// neighborhood filter.
func (s *Service) GetDashboard(carrierID uint, region string, window Window) (*Dashboard, error) {
	since, err := window.Since(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	pool, err := s.orders.Pool(order.PoolFilter{Neighborhood: region})
	if err != nil {
		return nil, err
	}
	mine, err := s.orders.AssignedTo(carrierID)
	if err != nil {
		return nil, err
	}
	completed, err := s.orders.CompletedBy(carrierID, order.PoolFilter{CompletedSince: since})
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Pool:      s.annotate(pool),
		Mine:      s.annotate(mine),
		Completed: s.annotate(completed),
	}, nil
}

// GetEarnings summarizes the carrier's full delivery history. Earnings are
// recomputed from the configured base fee and commission rate, never
// stored.
func (s *Service) GetEarnings(carrierID uint) (*EarningsSummary, error) {
	completed, err := s.orders.CompletedBy(carrierID, order.PoolFilter{})
	if err != nil {
		return nil, err
	}

	summary := &EarningsSummary{CompletedCount: len(completed)}
	var ratingSum int
	for i := range completed {
		summary.TotalEarnings += s.earnings(&completed[i])
		if completed[i].Rating != nil {
			ratingSum += *completed[i].Rating
			summary.RatedCount++
		}
	}
	if summary.RatedCount > 0 {
		summary.AverageRating = float64(ratingSum) / float64(summary.RatedCount)
	}
	return summary, nil
}

// Regions lists the delivery neighborhoods with at least one unclaimed
// pending order, for the dashboard's region filter dropdown.
func (s *Service) Regions() ([]string, error) {
	var regions []string
	err := s.db.Model(&order.Order{}).
		Where("status = ? AND carrier_id IS NULL", order.StatusPending).
		Distinct("delivery_neighborhood").
		Order("delivery_neighborhood ASC").
		Pluck("delivery_neighborhood", &regions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	return regions, nil
}

func (s *Service) annotate(orders []order.Order) []DashboardOrder {
	out := make([]DashboardOrder, 0, len(orders))
	for i := range orders {
		out = append(out, DashboardOrder{
			Order:    orders[i],
			Earnings: s.earnings(&orders[i]),
		})
	}
	return out
}

func (s *Service) earnings(o *order.Order) int64 {
	return o.Earnings(s.config.Pricing.CarrierBaseFee, s.config.Pricing.CarrierCommissionRate)
}
