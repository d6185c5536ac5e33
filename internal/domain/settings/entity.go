// internal/domain/settings/entity.go
package settings

import (
	"time"
)

// SystemSetting is an admin-tunable key/value pair. Values are stored as
// strings; typed accessors on the service parse them.
type SystemSetting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:100"`
	Value     string    `json:"value" gorm:"not null;size:500"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Keys the rest of the system reads
const (
	KeyMinOrderAmount = "min_order_amount"
	KeyDefaultVATRate = "vat_rate"
)
