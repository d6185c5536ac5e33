// internal/domain/messaging/entity.go
package messaging

import (
	"time"
)

// Message is a direct message between two users, typically customer to
// admin or admin to carrier
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"not null;index"`
	ReceiverID uint      `json:"receiver_id" gorm:"not null;index"`
	Subject    string    `json:"subject" gorm:"not null;size:255"`
	Body       string    `json:"body" gorm:"not null;type:text;column:message"`
	IsRead     bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}
