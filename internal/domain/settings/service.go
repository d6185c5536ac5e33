// internal/domain/settings/service.go
package settings

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/your-org/grocery-backend/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSettingNotFound is returned when a key has no stored value
var ErrSettingNotFound = errors.New("setting not found")

// Service manages system settings. Stored values override the config-file
// defaults, so admins can tune business constants without a restart.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new settings service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, config: cfg}
}

// Get returns the raw value for a key
func (s *Service) Get(key string) (string, error) {
	var setting SystemSetting
	result := s.db.First(&setting, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to retrieve setting: %w", result.Error)
	}
	return setting.Value, nil
}

// Set upserts a setting
func (s *Service) Set(key, value string) (*SystemSetting, error) {
	setting := &SystemSetting{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}
	return setting, nil
}

// List returns all settings
func (s *Service) List() ([]SystemSetting, error) {
	var settings []SystemSetting
	if err := s.db.Order("key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// Delete removes a setting so the config default applies again
func (s *Service) Delete(key string) error {
	result := s.db.Delete(&SystemSetting{}, "key = ?", key)
	if result.Error != nil {
		return fmt.Errorf("failed to delete setting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}

// MinOrderAmount returns the effective minimum order value: the stored
// override when present and parseable, the config default otherwise.
func (s *Service) MinOrderAmount() int64 {
	value, err := s.Get(KeyMinOrderAmount)
	if err != nil {
		return s.config.Pricing.MinOrderAmount
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed < 0 {
		return s.config.Pricing.MinOrderAmount
	}
	return parsed
}

// VATRate returns the effective VAT rate, stored override first
func (s *Service) VATRate() float64 {
	value, err := s.Get(KeyDefaultVATRate)
	if err != nil {
		return s.config.Pricing.VATRate
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 || parsed >= 1 {
		return s.config.Pricing.VATRate
	}
	return parsed
}
