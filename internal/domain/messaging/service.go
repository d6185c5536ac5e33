// internal/domain/messaging/service.go
package messaging

import (
	"errors"
	"fmt"

	"github.com/your-org/grocery-backend/internal/domain/user"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrSelfMessage     = errors.New("cannot send a message to yourself")
)

// Service handles user-to-user messaging
type Service struct {
	db *gorm.DB
}

// NewService creates a new messaging service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SendMessageRequest represents a new message
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Subject    string `json:"subject" binding:"required,max=255"`
	Body       string `json:"body" binding:"required"`
}

// Send delivers a message after verifying the receiver exists and is
// active
func (s *Service) Send(senderID uint, req *SendMessageRequest) (*Message, error) {
	if senderID == req.ReceiverID {
		return nil, ErrSelfMessage
	}

	var count int64
	err := s.db.Model(&user.User{}).
		Where("id = ? AND is_active = ?", req.ReceiverID, true).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to verify receiver: %w", err)
	}
	if count == 0 {
		return nil, user.ErrUserNotFound
	}

	msg := &Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Body:       req.Body,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return msg, nil
}

// Inbox lists messages received by a user, newest first
func (s *Service) Inbox(userID uint) ([]Message, error) {
	var messages []Message
	err := s.db.Where("receiver_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}
	return messages, nil
}

// Sent lists messages sent by a user, newest first
func (s *Service) Sent(userID uint) ([]Message, error) {
	var messages []Message
	err := s.db.Where("sender_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sent messages: %w", err)
	}
	return messages, nil
}

// MarkRead flags a received message as read. Only the receiver can mark
// their own messages.
func (s *Service) MarkRead(messageID, userID uint) error {
	result := s.db.Model(&Message{}).
		Where("id = ? AND receiver_id = ?", messageID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark message read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// UnreadCount returns how many unread messages a user has
func (s *Service) UnreadCount(userID uint) (int, error) {
	var count int64
	err := s.db.Model(&Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return int(count), nil
}
