package routes

import (
	"deployhub/internal/handlers"
	"deployhub/internal/middlewares"
	"deployhub/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminRoutes struct {
	handler      *handlers.AdminHandler
	adminService *services.AdminService
}

func NewAdminRoutes(handler *handlers.AdminHandler, adminService *services.AdminService) *AdminRoutes {
	return &AdminRoutes{handler: handler, adminService: adminService}
}

func (r *AdminRoutes) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.POST("/login", r.handler.Login)

	protected := admin.Group("")
	protected.Use(middlewares.RequireAdmin(r.adminService))
	{
		protected.POST("/logout", r.handler.Logout)
		protected.GET("/users", r.handler.ListUsers)
		protected.PATCH("/users/:id/tier", r.handler.SetUserTier)
		protected.GET("/analytics", r.handler.Stats)
		protected.GET("/tickets", r.handler.ListTickets)
		protected.PATCH("/tickets/:id", r.handler.SetTicketStatus)
	}
}
