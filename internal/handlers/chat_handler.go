package handlers

import (
	"net/http"
	"strconv"

	"deployhub/internal/responses"
	"deployhub/internal/services"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	response, err := h.chatService.Chat(userID, req.Message)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"response": response}, "Message processed")
}

// PublicChat handles POST /api/v1/public-chat
func (h *ChatHandler) PublicChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	response, err := h.chatService.PublicChat(req.Message)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"response": response}, "Message processed")
}

// History handles GET /api/v1/chat
func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	conversations, err := h.chatService.History(userID, limit)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, conversations, "Conversations retrieved successfully")
}
