package routes

import (
	"deployhub/internal/handlers"
	"deployhub/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type TicketRoutes struct {
	handler *handlers.TicketHandler
}

func NewTicketRoutes(handler *handlers.TicketHandler) *TicketRoutes {
	return &TicketRoutes{handler: handler}
}

func (r *TicketRoutes) RegisterRoutes(router *gin.RouterGroup) {
	tickets := router.Group("/tickets")
	tickets.Use(middlewares.Authenticate)
	{
		tickets.POST("", r.handler.Create)
		tickets.GET("", r.handler.List)
	}
}
