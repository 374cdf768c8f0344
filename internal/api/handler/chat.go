package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chatrelay/backend/internal/chathub"
	"chatrelay/backend/internal/models"
)

const defaultMessageLimit = 50

// SendMessageRequest is the body of the HTTP send fallback.
type SendMessageRequest struct {
	MessageText string `json:"message_text" binding:"required"`
}

// GetChatMessages returns the messages of the chat between the caller and
// :receiver_id, oldest first, bounded by the limit query parameter.
func (h *Handler) GetChatMessages(c *gin.Context) {
	userID := c.GetString(userIDKey)
	receiverID := models.CanonicalID(c.Param("receiver_id"))
	chatID := models.ChatID(userID, receiverID)

	limit := defaultMessageLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	messages, err := h.Storage.GetChatMessages(chatID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting messages: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    messages,
		"chat_id": chatID,
		"count":   len(messages),
	})
}

// SendMessage is the HTTP fallback for sending a message. It performs the
// same persistence and delivery contract as the websocket path.
func (h *Handler) SendMessage(c *gin.Context) {
	userID := c.GetString(userIDKey)
	receiverID := models.CanonicalID(c.Param("receiver_id"))

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message_text is required"})
		return
	}

	res := h.Router.Route(userID, receiverID, req.MessageText)
	switch res.Status {
	case chathub.StatusSkipped:
		c.JSON(http.StatusBadRequest, gin.H{"error": "message_text is empty"})
	case chathub.StatusError:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending message: " + res.Err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"data":      res.Persisted,
			"delivered": res.Delivered,
		})
	}
}

// GetUserChats lists the caller's chats, most recent activity first.
func (h *Handler) GetUserChats(c *gin.Context) {
	userID := c.GetString(userIDKey)

	chats, err := h.Storage.GetUserChats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting chats: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   chats,
		"count":  len(chats),
	})
}

// GetOnlineUsers returns the current presence snapshot.
func (h *Handler) GetOnlineUsers(c *gin.Context) {
	users := h.Registry.ListOnline()
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"users":  users,
		"count":  len(users),
	})
}
