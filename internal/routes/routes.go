package routes

import (
	"net/http"

	"deployhub/internal/handlers"
	"deployhub/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything RegisterRoutes needs to wire the API surface.
type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Application *handlers.ApplicationHandler
	Deployment  *handlers.DeploymentHandler
	Chat        *handlers.ChatHandler
	Analytics   *handlers.AnalyticsHandler
	File        *handlers.FileHandler
	Ticket      *handlers.TicketHandler
	Admin       *handlers.AdminHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers, adminService *services.AdminService) {
	api := router.Group("/api/v1")

	NewAuthRoutes(h.Auth).RegisterRoutes(api)
	NewUserRoutes(h.User).RegisterRoutes(api)
	NewApplicationRoutes(h.Application, h.Deployment, h.Analytics).RegisterRoutes(api)
	NewChatRoutes(h.Chat).RegisterRoutes(api)
	NewAnalyticsRoutes(h.Analytics).RegisterRoutes(api)
	NewFileRoutes(h.File).RegisterRoutes(api)
	NewTicketRoutes(h.Ticket).RegisterRoutes(api)
	NewAdminRoutes(h.Admin, adminService).RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
