// internal/domain/order/entity.go
package order

import (
	"time"
)

// OrderStatus is the order lifecycle state
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAssigned  OrderStatus = "assigned"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid checks if the status is one of the known states
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the order can no longer change state
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Order is a customer order and its delivery assignment.
//
// CarrierID is set exactly while the order is assigned or completed and is
// null in pending and cancelled. The delivery address and neighborhood are
// snapshotted from the customer at order time, never live-joined.
type Order struct {
	ID                    uint        `json:"id" gorm:"primaryKey"`
	CustomerID            uint        `json:"customer_id" gorm:"not null;index"`
	CarrierID             *uint       `json:"carrier_id" gorm:"index"`
	Status                OrderStatus `json:"status" gorm:"not null;default:'pending';index"`
	PriorityLevel         int         `json:"priority_level" gorm:"not null;default:0"`
	Subtotal              int64       `json:"subtotal" gorm:"not null"`
	VatAmount             int64       `json:"vat_amount" gorm:"not null"`
	DiscountAmount        int64       `json:"discount_amount" gorm:"not null;default:0"`
	LoyaltyDiscount       int64       `json:"loyalty_discount" gorm:"not null;default:0"`
	TotalCost             int64       `json:"total_cost" gorm:"not null"`
	CouponCode            string      `json:"coupon_code,omitempty" gorm:"size:50"`
	OrderTime             time.Time   `json:"order_time" gorm:"not null;index"`
	DeliveryTime          *time.Time  `json:"delivery_time"`
	RequestedDeliveryDate time.Time   `json:"requested_delivery_date" gorm:"not null"`
	DeliverySlot          string      `json:"delivery_slot" gorm:"not null;size:50"`
	DeliveryNeighborhood  string      `json:"delivery_neighborhood" gorm:"not null;size:100;index"`
	DeliveryAddress       string      `json:"delivery_address" gorm:"not null;size:500"`
	PaymentMethod         string      `json:"payment_method" gorm:"not null;size:50"`
	Rating                *int        `json:"rating"`
	Items                 []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// OrderItem is a priced line snapshot. Product name and unit price are
// copied at checkout so later catalog edits never rewrite order history.
type OrderItem struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderID     uint   `json:"order_id" gorm:"not null;index"`
	ProductID   uint   `json:"product_id" gorm:"not null"`
	ProductName string `json:"product_name" gorm:"not null;size:255"`
	Quantity    int    `json:"quantity" gorm:"not null"`
	UnitPrice   int64  `json:"unit_price" gorm:"not null"`
	TotalPrice  int64  `json:"total_price" gorm:"not null"`
}

// Earnings computes the carrier's pay for this order. Earnings are derived
// on read, never stored.
func (o *Order) Earnings(baseFee int64, commissionRate float64) int64 {
	return baseFee + int64(float64(o.TotalCost)*commissionRate)
}

// AssignedTo reports whether the given carrier currently owns the order
func (o *Order) AssignedTo(carrierID uint) bool {
	return o.CarrierID != nil && *o.CarrierID == carrierID
}
