package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomify/services/chat"
)

// ChatHandler serves the chat platform webhook endpoints.
type ChatHandler struct {
	ChatSvc chat.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatSvc chat.ChatService) *ChatHandler {
	return &ChatHandler{ChatSvc: chatSvc}
}

type chatMessageRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Text   string `json:"text"`
}

type chatFollowRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// MessageHandler processes one inbound chat message and returns the replies
// to send back, in order.
func (h *ChatHandler) MessageHandler(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	replies := h.ChatSvc.HandleMessage(c.Request.Context(), req.UserID, req.Text)
	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

// FollowHandler greets a user who just followed or added the bot.
func (h *ChatHandler) FollowHandler(c *gin.Context) {
	var req chatFollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	replies := h.ChatSvc.HandleFollow(c.Request.Context(), req.UserID)
	c.JSON(http.StatusOK, gin.H{"replies": replies})
}
