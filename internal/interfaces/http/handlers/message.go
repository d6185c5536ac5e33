// internal/interfaces/http/handlers/message.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/messaging"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// MessageHandler handles messaging endpoints
type MessageHandler struct {
	messagingService *messaging.Service
	config           *config.Config
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(db *gorm.DB, cfg *config.Config) *MessageHandler {
	return &MessageHandler{
		messagingService: messaging.NewService(db),
		config:           cfg,
	}
}

// SendMessage handles POST /messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req messaging.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	msg, err := h.messagingService.Send(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, messaging.ErrSelfMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a message to yourself"})
		case errors.Is(err, user.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    msg,
	})
}

// GetInbox handles GET /messages/inbox
func (h *MessageHandler) GetInbox(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	messages, err := h.messagingService.Inbox(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve inbox",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inbox retrieved successfully",
		"data":    messages,
	})
}

// GetSent handles GET /messages/sent
func (h *MessageHandler) GetSent(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	messages, err := h.messagingService.Sent(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve sent messages",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sent messages retrieved successfully",
		"data":    messages,
	})
}

// MarkRead handles POST /messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	messageID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	if err := h.messagingService.MarkRead(messageID, userID); err != nil {
		if errors.Is(err, messaging.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to mark message read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message marked as read",
	})
}

// GetUnreadCount handles GET /messages/unread-count
func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	count, err := h.messagingService.UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count unread messages",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Unread count retrieved successfully",
		"data":    gin.H{"unread": count},
	})
}
