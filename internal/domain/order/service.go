// internal/domain/order/service.go
package order

import (
	"errors"
	"time"

	"github.com/your-org/grocery-backend/internal/config"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrAlreadyClaimed  = errors.New("order already claimed by another carrier")
	ErrNotAssignee     = errors.New("order is not assigned to this carrier")
	ErrNotCancellable  = errors.New("only pending orders can be cancelled")
	ErrNotRateable     = errors.New("only your own completed orders can be rated")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrMissingDelivery = errors.New("delivery date and slot are required")
)

// Service drives the order lifecycle. Transition preconditions live in the
// repository's conditional updates; this layer validates inputs, maps
// failed transitions to domain errors and derives carrier earnings.
type Service struct {
	repo   Repository
	config *config.Config
	now    func() time.Time
}

// NewService creates a new order service
func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CompletedOrder pairs a finished order with the carrier's derived pay
type CompletedOrder struct {
	Order    Order `json:"order"`
	Earnings int64 `json:"earnings"`
}

// Create persists a priced order. The pricing gate has already run by the
// time an Order reaches here; this validates shape, not money.
func (s *Service) Create(o *Order) error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if o.RequestedDeliveryDate.IsZero() || o.DeliverySlot == "" {
		return ErrMissingDelivery
	}

	o.Status = StatusPending
	o.CarrierID = nil
	if o.OrderTime.IsZero() {
		o.OrderTime = s.now()
	}
	return s.repo.Create(o)
}

// Get retrieves an order by id
func (s *Service) Get(id uint) (*Order, error) {
	return s.repo.GetByID(id)
}

// ListByCustomer returns a customer's order history, newest first
func (s *Service) ListByCustomer(customerID uint) ([]Order, error) {
	return s.repo.ListByCustomer(customerID)
}

// List returns all orders for the admin view, optionally filtered by
// status. An invalid status filter returns nothing rather than erroring.
func (s *Service) List(status OrderStatus) ([]Order, error) {
	return s.repo.List(status)
}

// CompletedCount returns how many orders a customer has had delivered.
// The loyalty program keys off this number.
func (s *Service) CompletedCount(customerID uint) (int, error) {
	return s.repo.CountCompletedByCustomer(customerID)
}

// Claim assigns a pending order to a carrier. Exactly one of any number of
// concurrent claimants wins; the rest get ErrAlreadyClaimed.
func (s *Service) Claim(orderID, carrierID uint) (*Order, error) {
	won, err := s.repo.Claim(orderID, carrierID)
	if err != nil {
		return nil, err
	}
	if !won {
		// distinguish a lost race from a bad id
		if _, err := s.repo.GetByID(orderID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyClaimed
	}
	return s.repo.GetByID(orderID)
}

// Release puts an assigned order back in the pool. Only the assigned
// carrier may release.
func (s *Service) Release(orderID, carrierID uint) error {
	ok, err := s.repo.Release(orderID, carrierID)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.repo.GetByID(orderID); err != nil {
			return err
		}
		return ErrNotAssignee
	}
	return nil
}

// Complete marks an assigned order delivered and returns it with the
// carrier's earnings for the run.
func (s *Service) Complete(orderID, carrierID uint) (*CompletedOrder, error) {
	ok, err := s.repo.Complete(orderID, carrierID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := s.repo.GetByID(orderID); err != nil {
			return nil, err
		}
		return nil, ErrNotAssignee
	}

	o, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	return &CompletedOrder{
		Order:    *o,
		Earnings: s.Earnings(o),
	}, nil
}

// Cancel terminates a pending order and restores its stock. Admin only;
// the handler enforces the role.
func (s *Service) Cancel(orderID uint) error {
	ok, err := s.repo.Cancel(orderID)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.repo.GetByID(orderID); err != nil {
			return err
		}
		return ErrNotCancellable
	}
	return nil
}

// Rate records a 1-5 delivery rating on the customer's own completed order
func (s *Service) Rate(orderID, customerID uint, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	ok, err := s.repo.Rate(orderID, customerID, rating)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.repo.GetByID(orderID); err != nil {
			return err
		}
		return ErrNotRateable
	}
	return nil
}

// Earnings derives the carrier's pay for an order from the configured base
// fee and commission rate
func (s *Service) Earnings(o *Order) int64 {
	return o.Earnings(s.config.Pricing.CarrierBaseFee, s.config.Pricing.CarrierCommissionRate)
}

// GetForCustomer retrieves an order, enforcing that it belongs to the
// requesting customer
func (s *Service) GetForCustomer(orderID, customerID uint) (*Order, error) {
	o, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}
