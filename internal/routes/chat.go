package routes

import (
	"deployhub/internal/handlers"
	"deployhub/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type ChatRoutes struct {
	handler *handlers.ChatHandler
}

func NewChatRoutes(handler *handlers.ChatHandler) *ChatRoutes {
	return &ChatRoutes{handler: handler}
}

func (r *ChatRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/public-chat", r.handler.PublicChat)

	chat := router.Group("/chat")
	chat.Use(middlewares.Authenticate)
	{
		chat.POST("", r.handler.Chat)
		chat.GET("", r.handler.History)
	}
}
