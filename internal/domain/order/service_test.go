// internal/domain/order/service_test.go
package order

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/grocery-backend/internal/config"
)

// mockRepository is an in-memory Repository that mirrors the conditional
// update semantics of the gorm implementation
type mockRepository struct {
	mu     sync.Mutex
	nextID uint
	orders map[uint]*Order
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1, orders: map[uint]*Order{}}
}

func (m *mockRepository) Create(o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = m.nextID
	m.nextID++
	stored := *o
	m.orders[o.ID] = &stored
	return nil
}

func (m *mockRepository) GetByID(id uint) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *mockRepository) ListByCustomer(customerID uint) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockRepository) List(status OrderStatus) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockRepository) CountCompletedByCustomer(customerID uint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, o := range m.orders {
		if o.CustomerID == customerID && o.Status == StatusCompleted {
			count++
		}
	}
	return count, nil
}

func (m *mockRepository) Claim(orderID, carrierID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.Status != StatusPending || o.CarrierID != nil {
		return false, nil
	}
	o.Status = StatusAssigned
	o.CarrierID = &carrierID
	return true, nil
}

func (m *mockRepository) Release(orderID, carrierID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.Status != StatusAssigned || o.CarrierID == nil || *o.CarrierID != carrierID {
		return false, nil
	}
	o.Status = StatusPending
	o.CarrierID = nil
	return true, nil
}

func (m *mockRepository) Complete(orderID, carrierID uint, deliveredAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.Status != StatusAssigned || o.CarrierID == nil || *o.CarrierID != carrierID {
		return false, nil
	}
	o.Status = StatusCompleted
	o.DeliveryTime = &deliveredAt
	return true, nil
}

func (m *mockRepository) Cancel(orderID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.Status != StatusPending {
		return false, nil
	}
	o.Status = StatusCancelled
	return true, nil
}

func (m *mockRepository) Rate(orderID, customerID uint, rating int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.CustomerID != customerID || o.Status != StatusCompleted {
		return false, nil
	}
	o.Rating = &rating
	return true, nil
}

func (m *mockRepository) Pool(filter PoolFilter) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if o.Status != StatusPending || o.CarrierID != nil {
			continue
		}
		if filter.Neighborhood != "" && filter.Neighborhood != RegionAll &&
			o.DeliveryNeighborhood != filter.Neighborhood {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockRepository) AssignedTo(carrierID uint) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if o.Status == StatusAssigned && o.CarrierID != nil && *o.CarrierID == carrierID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockRepository) CompletedBy(carrierID uint, filter PoolFilter) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if o.Status != StatusCompleted || o.CarrierID == nil || *o.CarrierID != carrierID {
			continue
		}
		if !filter.CompletedSince.IsZero() && o.DeliveryTime != nil &&
			o.DeliveryTime.Before(filter.CompletedSince) {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Pricing: config.PricingConfig{
			VATRate:               0.18,
			MinOrderAmount:        5000,
			CarrierBaseFee:        2500,
			CarrierCommissionRate: 0.05,
		},
	}
}

func pendingOrder(repo *mockRepository, customerID uint) *Order {
	o := &Order{
		CustomerID:            customerID,
		Status:                StatusPending,
		Subtotal:              20000,
		VatAmount:             3600,
		TotalCost:             23600,
		OrderTime:             time.Now().UTC(),
		RequestedDeliveryDate: time.Now().UTC().Add(24 * time.Hour),
		DeliverySlot:          "09:00-12:00",
		DeliveryNeighborhood:  "downtown",
		DeliveryAddress:       "1 Main St",
		PaymentMethod:         "cash",
		Items: []OrderItem{
			{ProductID: 1, ProductName: "Tomato", Quantity: 4, UnitPrice: 5000, TotalPrice: 20000},
		},
	}
	_ = repo.Create(o)
	return o
}

func TestService_Create(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	t.Run("rejects empty order", func(t *testing.T) {
		err := svc.Create(&Order{
			CustomerID:            1,
			RequestedDeliveryDate: time.Now(),
			DeliverySlot:          "09:00-12:00",
		})
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("rejects missing delivery slot", func(t *testing.T) {
		err := svc.Create(&Order{
			CustomerID:            1,
			RequestedDeliveryDate: time.Now(),
			Items:                 []OrderItem{{ProductID: 1, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrMissingDelivery)
	})

	t.Run("created orders start pending and unassigned", func(t *testing.T) {
		o := &Order{
			CustomerID:            1,
			Status:                StatusAssigned, // must be overridden
			RequestedDeliveryDate: time.Now(),
			DeliverySlot:          "09:00-12:00",
			Items:                 []OrderItem{{ProductID: 1, Quantity: 1}},
		}
		require.NoError(t, svc.Create(o))
		stored, err := repo.GetByID(o.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, stored.Status)
		assert.Nil(t, stored.CarrierID)
		assert.False(t, stored.OrderTime.IsZero())
	})
}

func TestService_Claim(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())
	o := pendingOrder(repo, 1)

	claimed, err := svc.Claim(o.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusAssigned, claimed.Status)
	require.NotNil(t, claimed.CarrierID)
	assert.Equal(t, uint(7), *claimed.CarrierID)

	// second carrier loses
	_, err = svc.Claim(o.ID, 8)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)

	// unknown order surfaces not-found, not a lost race
	_, err = svc.Claim(999, 7)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_ClaimRace(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())
	o := pendingOrder(repo, 1)

	const carriers = 16
	var wg sync.WaitGroup
	winners := make(chan uint, carriers)
	for c := uint(1); c <= carriers; c++ {
		wg.Add(1)
		go func(carrierID uint) {
			defer wg.Done()
			if _, err := svc.Claim(o.ID, carrierID); err == nil {
				winners <- carrierID
			}
		}(c)
	}
	wg.Wait()
	close(winners)

	var wins []uint
	for w := range winners {
		wins = append(wins, w)
	}
	require.Len(t, wins, 1, "exactly one carrier must win the claim race")

	stored, err := repo.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, wins[0], *stored.CarrierID)
}

func TestService_Release(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())
	o := pendingOrder(repo, 1)
	_, err := svc.Claim(o.ID, 7)
	require.NoError(t, err)

	// a different carrier cannot release
	err = svc.Release(o.ID, 8)
	assert.ErrorIs(t, err, ErrNotAssignee)

	require.NoError(t, svc.Release(o.ID, 7))
	stored, err := repo.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Nil(t, stored.CarrierID)

	// released orders can be claimed again, by anyone
	_, err = svc.Claim(o.ID, 8)
	assert.NoError(t, err)
}

func TestService_Complete(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())
	o := pendingOrder(repo, 1)
	_, err := svc.Claim(o.ID, 7)
	require.NoError(t, err)

	// only the assignee can complete
	_, err = svc.Complete(o.ID, 8)
	assert.ErrorIs(t, err, ErrNotAssignee)

	done, err := svc.Complete(o.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Order.Status)
	require.NotNil(t, done.Order.DeliveryTime)
	// baseFee 2500 + 5% of 23600
	assert.Equal(t, int64(2500+1180), done.Earnings)

	// completed is terminal
	_, err = svc.Complete(o.ID, 7)
	assert.ErrorIs(t, err, ErrNotAssignee)
	err = svc.Release(o.ID, 7)
	assert.ErrorIs(t, err, ErrNotAssignee)
}

func TestService_Cancel(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	t.Run("pending orders cancel", func(t *testing.T) {
		o := pendingOrder(repo, 1)
		require.NoError(t, svc.Cancel(o.ID))
		stored, err := repo.GetByID(o.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, stored.Status)
	})

	t.Run("assigned orders do not cancel", func(t *testing.T) {
		o := pendingOrder(repo, 1)
		_, err := svc.Claim(o.ID, 7)
		require.NoError(t, err)
		assert.ErrorIs(t, svc.Cancel(o.ID), ErrNotCancellable)
	})
}

func TestService_Rate(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())
	o := pendingOrder(repo, 1)

	assert.ErrorIs(t, svc.Rate(o.ID, 1, 0), ErrInvalidRating)
	assert.ErrorIs(t, svc.Rate(o.ID, 1, 6), ErrInvalidRating)

	// not yet completed
	assert.ErrorIs(t, svc.Rate(o.ID, 1, 5), ErrNotRateable)

	_, err := svc.Claim(o.ID, 7)
	require.NoError(t, err)
	_, err = svc.Complete(o.ID, 7)
	require.NoError(t, err)

	// another customer cannot rate it
	assert.ErrorIs(t, svc.Rate(o.ID, 2, 5), ErrNotRateable)

	require.NoError(t, svc.Rate(o.ID, 1, 5))
	stored, err := repo.GetByID(o.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Rating)
	assert.Equal(t, 5, *stored.Rating)
}

func TestOrder_Earnings(t *testing.T) {
	o := &Order{TotalCost: 30000}
	assert.Equal(t, int64(2500+1500), o.Earnings(2500, 0.05))

	free := &Order{TotalCost: 0}
	assert.Equal(t, int64(2500), free.Earnings(2500, 0.05))
}
