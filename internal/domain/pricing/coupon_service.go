// internal/domain/pricing/coupon_service.go
package pricing

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponCodeTaken = errors.New("coupon code already exists")
)

// CouponService manages coupon administration and lookup
type CouponService struct {
	db *gorm.DB
}

// NewCouponService creates a new coupon service
func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

// CreateCouponRequest represents coupon creation data
type CreateCouponRequest struct {
	Code               string    `json:"code" binding:"required,min=3,max=50"`
	DiscountPercentage int       `json:"discount_percentage" binding:"required,min=1,max=100"`
	MinPurchaseAmount  int64     `json:"min_purchase_amount" binding:"min=0"`
	ValidUntil         time.Time `json:"valid_until" binding:"required"`
}

// UpdateCouponRequest represents coupon update data
type UpdateCouponRequest struct {
	DiscountPercentage *int       `json:"discount_percentage"`
	MinPurchaseAmount  *int64     `json:"min_purchase_amount"`
	ValidUntil         *time.Time `json:"valid_until"`
	IsActive           *bool      `json:"is_active"`
}

// Create registers a new coupon. Codes are unique case-insensitively.
func (s *CouponService) Create(req *CreateCouponRequest) (*Coupon, error) {
	code := NormalizeCode(req.Code)

	var count int64
	if err := s.db.Model(&Coupon{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check coupon code: %w", err)
	}
	if count > 0 {
		return nil, ErrCouponCodeTaken
	}

	coupon := &Coupon{
		Code:               code,
		DiscountPercentage: req.DiscountPercentage,
		MinPurchaseAmount:  req.MinPurchaseAmount,
		ValidUntil:         req.ValidUntil,
		IsActive:           true,
	}
	if err := s.db.Create(coupon).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

// FindByCode looks up a coupon by its code, case-insensitively. It returns
// the coupon whether or not it is currently valid; callers evaluate it
// against their subtotal.
func (s *CouponService) FindByCode(code string) (*Coupon, error) {
	var coupon Coupon
	result := s.db.Where("code = ?", NormalizeCode(code)).First(&coupon)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to retrieve coupon: %w", result.Error)
	}
	return &coupon, nil
}

// Get retrieves a coupon by id
func (s *CouponService) Get(id uint) (*Coupon, error) {
	var coupon Coupon
	result := s.db.First(&coupon, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to retrieve coupon: %w", result.Error)
	}
	return &coupon, nil
}

// List returns all coupons, newest first
func (s *CouponService) List() ([]Coupon, error) {
	var coupons []Coupon
	if err := s.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

// Update modifies a coupon's terms
func (s *CouponService) Update(id uint, req *UpdateCouponRequest) (*Coupon, error) {
	coupon, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.DiscountPercentage != nil {
		updates["discount_percentage"] = *req.DiscountPercentage
	}
	if req.MinPurchaseAmount != nil {
		updates["min_purchase_amount"] = *req.MinPurchaseAmount
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return coupon, nil
	}

	if err := s.db.Model(coupon).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	return coupon, nil
}

// Delete soft-deletes a coupon
func (s *CouponService) Delete(id uint) error {
	result := s.db.Delete(&Coupon{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCouponNotFound
	}
	return nil
}
