// internal/domain/analytics/service.go
package analytics

import (
	"errors"
	"fmt"

	"github.com/your-org/grocery-backend/internal/domain/order"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"gorm.io/gorm"
)

// ErrBadBucket is returned for an unrecognized time bucket
var ErrBadBucket = errors.New("bucket must be day, week or month")

// Service computes reporting rollups over order history. Everything here
// is read-only and recomputed per request; nothing is materialized.
type Service struct {
	db *gorm.DB
}

// NewService creates a new analytics service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CategoryRevenue is revenue grouped by product category
type CategoryRevenue struct {
	Category string `json:"category"`
	Orders   int    `json:"orders"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

// BucketRevenue is revenue grouped by a time bucket
type BucketRevenue struct {
	Bucket  string `json:"bucket"`
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}

// RangeRevenue is order counts grouped by total-cost band
type RangeRevenue struct {
	Label   string `json:"label"`
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}

// CarrierPerformance summarizes one carrier's delivery record
type CarrierPerformance struct {
	CarrierID      uint     `json:"carrier_id"`
	CarrierName    string   `json:"carrier_name"`
	CompletedCount int      `json:"completed_count"`
	AverageRating  *float64 `json:"average_rating"`
}

// ProductSales is a product ranked by units sold
type ProductSales struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Revenue     int64  `json:"revenue"`
}

// CustomerActivity is a customer ranked by order count
type CustomerActivity struct {
	CustomerID uint   `json:"customer_id"`
	Name       string `json:"name"`
	Orders     int    `json:"orders"`
	TotalSpent int64  `json:"total_spent"`
}

// RevenueByCategory sums completed-order revenue per product type
func (s *Service) RevenueByCategory() ([]CategoryRevenue, error) {
	var rows []CategoryRevenue
	err := s.db.Raw(`
		SELECT p.type AS category,
		       COUNT(DISTINCT o.id) AS orders,
		       SUM(oi.quantity) AS quantity,
		       SUM(oi.total_price) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status = ?
		GROUP BY p.type
		ORDER BY revenue DESC`, order.StatusCompleted).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by category: %w", err)
	}
	return rows, nil
}

// RevenueByBucket sums completed-order revenue per day, ISO week or month
func (s *Service) RevenueByBucket(bucket string) ([]BucketRevenue, error) {
	var format string
	switch bucket {
	case "day":
		format = "YYYY-MM-DD"
	case "week":
		format = "IYYY-IW"
	case "month":
		format = "YYYY-MM"
	default:
		return nil, ErrBadBucket
	}

	var rows []BucketRevenue
	err := s.db.Raw(fmt.Sprintf(`
		SELECT to_char(order_time, '%s') AS bucket,
		       COUNT(*) AS orders,
		       SUM(total_cost) AS revenue
		FROM orders
		WHERE status = ?
		GROUP BY bucket
		ORDER BY bucket ASC`, format), order.StatusCompleted).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by %s: %w", bucket, err)
	}
	return rows, nil
}

// RevenueByAmountRange buckets completed orders into total-cost bands.
// Bounds are cents: under 100, 100-500, over 500 in display currency.
func (s *Service) RevenueByAmountRange() ([]RangeRevenue, error) {
	var rows []RangeRevenue
	err := s.db.Raw(`
		SELECT CASE
		         WHEN total_cost < 10000 THEN 'under_100'
		         WHEN total_cost < 50000 THEN '100_to_500'
		         ELSE 'over_500'
		       END AS label,
		       COUNT(*) AS orders,
		       SUM(total_cost) AS revenue
		FROM orders
		WHERE status = ?
		GROUP BY label
		ORDER BY MIN(total_cost) ASC`, order.StatusCompleted).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by amount range: %w", err)
	}
	return rows, nil
}

// CarrierPerformanceReport counts completed deliveries and averages the
// customer ratings per carrier
func (s *Service) CarrierPerformanceReport() ([]CarrierPerformance, error) {
	var rows []CarrierPerformance
	err := s.db.Raw(`
		SELECT u.id AS carrier_id,
		       TRIM(u.first_name || ' ' || u.last_name) AS carrier_name,
		       COUNT(o.id) AS completed_count,
		       AVG(o.rating) AS average_rating
		FROM users u
		LEFT JOIN orders o ON o.carrier_id = u.id AND o.status = ?
		WHERE u.role = ? AND u.deleted_at IS NULL
		GROUP BY u.id, u.first_name, u.last_name
		ORDER BY completed_count DESC`, order.StatusCompleted, user.RoleCarrier).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate carrier performance: %w", err)
	}
	return rows, nil
}

// MostSoldProducts ranks products by units sold across completed orders
func (s *Service) MostSoldProducts(limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []ProductSales
	err := s.db.Raw(`
		SELECT oi.product_id,
		       oi.product_name,
		       SUM(oi.quantity) AS quantity,
		       SUM(oi.total_price) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = ?
		GROUP BY oi.product_id, oi.product_name
		ORDER BY quantity DESC
		LIMIT ?`, order.StatusCompleted, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate product sales: %w", err)
	}
	return rows, nil
}

// MostActiveCustomers ranks customers by order count
func (s *Service) MostActiveCustomers(limit int) ([]CustomerActivity, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []CustomerActivity
	err := s.db.Raw(`
		SELECT u.id AS customer_id,
		       TRIM(u.first_name || ' ' || u.last_name) AS name,
		       COUNT(o.id) AS orders,
		       COALESCE(SUM(o.total_cost), 0) AS total_spent
		FROM users u
		JOIN orders o ON o.customer_id = u.id
		WHERE o.status != ?
		GROUP BY u.id, u.first_name, u.last_name
		ORDER BY orders DESC
		LIMIT ?`, order.StatusCancelled, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate customer activity: %w", err)
	}
	return rows, nil
}
