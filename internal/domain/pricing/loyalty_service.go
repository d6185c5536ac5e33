// internal/domain/pricing/loyalty_service.go
package pricing

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrLoyaltyNotConfigured is returned when no loyalty row exists yet
var ErrLoyaltyNotConfigured = errors.New("loyalty program is not configured")

// LoyaltyService manages the loyalty program configuration. The program is
// a singleton: setting a new configuration deactivates every other row in
// the same transaction so at most one row is ever active.
type LoyaltyService struct {
	db *gorm.DB
}

// NewLoyaltyService creates a new loyalty service
func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{db: db}
}

// SetLoyaltyRequest represents loyalty program configuration. A nil
// MinOrders disables the program while keeping the row for history.
type SetLoyaltyRequest struct {
	MinOrders          *int `json:"min_orders"`
	DiscountPercentage int  `json:"discount_percentage" binding:"required,min=1,max=100"`
}

// Active returns the active loyalty configuration, or
// ErrLoyaltyNotConfigured when none exists. Callers treat the latter as
// "no loyalty discount", not as a failure.
func (s *LoyaltyService) Active() (*LoyaltySetting, error) {
	var setting LoyaltySetting
	result := s.db.Where("is_active = ?", true).Order("created_at DESC").First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLoyaltyNotConfigured
		}
		return nil, fmt.Errorf("failed to retrieve loyalty settings: %w", result.Error)
	}
	return &setting, nil
}

// Set replaces the loyalty configuration
func (s *LoyaltyService) Set(req *SetLoyaltyRequest) (*LoyaltySetting, error) {
	setting := &LoyaltySetting{
		MinOrders:          req.MinOrders,
		DiscountPercentage: req.DiscountPercentage,
		IsActive:           true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&LoyaltySetting{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate previous loyalty settings: %w", err)
		}
		if err := tx.Create(setting).Error; err != nil {
			return fmt.Errorf("failed to create loyalty settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return setting, nil
}

// Disable turns the loyalty program off without recording a new
// configuration
func (s *LoyaltyService) Disable() error {
	if err := s.db.Model(&LoyaltySetting{}).Where("is_active = ?", true).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to disable loyalty program: %w", err)
	}
	return nil
}
