// internal/domain/order/repository.go
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// PoolFilter selects orders for a carrier dashboard partition
type PoolFilter struct {
	// Neighborhood restricts the pool to a delivery region. RegionAll
	// disables the filter.
	Neighborhood string
	// CompletedSince bounds the completed partition; zero means unbounded
	CompletedSince time.Time
}

// RegionAll is the sentinel that disables the dashboard region filter
const RegionAll = "all"

// Repository is the order persistence contract. The lifecycle service
// depends on this interface so transition rules can be tested without a
// database.
type Repository interface {
	// Create persists the order header, its items and the matching stock
	// decrements as one atomic unit
	Create(o *Order) error
	GetByID(id uint) (*Order, error)
	ListByCustomer(customerID uint) ([]Order, error)
	// List returns every order, optionally filtered by status
	List(status OrderStatus) ([]Order, error)
	CountCompletedByCustomer(customerID uint) (int, error)

	// Claim atomically assigns a pending unassigned order to a carrier.
	// It returns false when another carrier already won the order.
	Claim(orderID, carrierID uint) (bool, error)
	// Release returns an assigned order to the pool. Only the assigned
	// carrier's release takes effect; anyone else's reports false.
	Release(orderID, carrierID uint) (bool, error)
	// Complete marks an assigned order delivered, stamping the delivery
	// time. Same ownership rule as Release.
	Complete(orderID, carrierID uint, deliveredAt time.Time) (bool, error)
	// Cancel terminates a pending order and restores its stock
	Cancel(orderID uint) (bool, error)

	// Rate records the customer's delivery rating on a completed order
	Rate(orderID, customerID uint, rating int) (bool, error)

	Pool(filter PoolFilter) ([]Order, error)
	AssignedTo(carrierID uint) ([]Order, error)
	CompletedBy(carrierID uint, filter PoolFilter) ([]Order, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed order repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(o *Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for _, item := range o.Items {
			if err := catalog.AdjustStockTx(tx, item.ProductID, -item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormRepository) GetByID(id uint) (*Order, error) {
	var o Order
	result := r.db.Preload("Items").First(&o, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

func (r *gormRepository) ListByCustomer(customerID uint) ([]Order, error) {
	var orders []Order
	err := r.db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("order_time DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *gormRepository) List(status OrderStatus) ([]Order, error) {
	query := r.db.Preload("Items")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []Order
	if err := query.Order("order_time DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *gormRepository) CountCompletedByCustomer(customerID uint) (int, error) {
	var count int64
	err := r.db.Model(&Order{}).
		Where("customer_id = ? AND status = ?", customerID, StatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count completed orders: %w", err)
	}
	return int(count), nil
}

// Claim is the one operation that needs true mutual exclusion: the status
// precondition and the assignment execute as a single conditional UPDATE,
// so two carriers racing on the same order resolve to exactly one winner.
func (r *gormRepository) Claim(orderID, carrierID uint) (bool, error) {
	result := r.db.Model(&Order{}).
		Where("id = ? AND status = ? AND carrier_id IS NULL", orderID, StatusPending).
		Updates(map[string]interface{}{
			"status":     StatusAssigned,
			"carrier_id": carrierID,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim order: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormRepository) Release(orderID, carrierID uint) (bool, error) {
	result := r.db.Model(&Order{}).
		Where("id = ? AND status = ? AND carrier_id = ?", orderID, StatusAssigned, carrierID).
		Updates(map[string]interface{}{
			"status":     StatusPending,
			"carrier_id": nil,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to release order: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormRepository) Complete(orderID, carrierID uint, deliveredAt time.Time) (bool, error) {
	result := r.db.Model(&Order{}).
		Where("id = ? AND status = ? AND carrier_id = ?", orderID, StatusAssigned, carrierID).
		Updates(map[string]interface{}{
			"status":        StatusCompleted,
			"delivery_time": deliveredAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to complete order: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Cancel terminates a pending order and puts its stock back. The guard and
// the restore run in one transaction so a concurrent claim can never race
// a cancellation into a half-restored state.
func (r *gormRepository) Cancel(orderID uint) (bool, error) {
	var cancelled bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Order{}).
			Where("id = ? AND status = ?", orderID, StatusPending).
			Update("status", StatusCancelled)
		if result.Error != nil {
			return fmt.Errorf("failed to cancel order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		var items []OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load order items: %w", err)
		}
		for _, item := range items {
			if err := catalog.AdjustStockTx(tx, item.ProductID, item.Quantity); err != nil {
				// the product row may have been hard-removed; stock
				// restore is best effort for missing products
				if errors.Is(err, catalog.ErrProductNotFound) {
					continue
				}
				return err
			}
		}
		cancelled = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return cancelled, nil
}

func (r *gormRepository) Rate(orderID, customerID uint, rating int) (bool, error) {
	result := r.db.Model(&Order{}).
		Where("id = ? AND customer_id = ? AND status = ?", orderID, customerID, StatusCompleted).
		Update("rating", rating)
	if result.Error != nil {
		return false, fmt.Errorf("failed to rate order: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Pool lists unclaimed pending orders, most urgent first, oldest first
// within a priority level.
func (r *gormRepository) Pool(filter PoolFilter) ([]Order, error) {
	query := r.db.Preload("Items").
		Where("status = ? AND carrier_id IS NULL", StatusPending)
	if filter.Neighborhood != "" && filter.Neighborhood != RegionAll {
		query = query.Where("delivery_neighborhood = ?", filter.Neighborhood)
	}

	var orders []Order
	err := query.Order("priority_level DESC, order_time ASC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query order pool: %w", err)
	}
	return orders, nil
}

func (r *gormRepository) AssignedTo(carrierID uint) ([]Order, error) {
	var orders []Order
	err := r.db.Preload("Items").
		Where("status = ? AND carrier_id = ?", StatusAssigned, carrierID).
		Order("priority_level DESC, order_time ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned orders: %w", err)
	}
	return orders, nil
}

func (r *gormRepository) CompletedBy(carrierID uint, filter PoolFilter) ([]Order, error) {
	query := r.db.Preload("Items").
		Where("status = ? AND carrier_id = ?", StatusCompleted, carrierID)
	if !filter.CompletedSince.IsZero() {
		query = query.Where("delivery_time >= ?", filter.CompletedSince)
	}

	var orders []Order
	err := query.Order("delivery_time DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query completed orders: %w", err)
	}
	return orders, nil
}
