package routes

import (
	"deployhub/internal/handlers"
	"deployhub/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type ApplicationRoutes struct {
	apps        *handlers.ApplicationHandler
	deployments *handlers.DeploymentHandler
	analytics   *handlers.AnalyticsHandler
}

func NewApplicationRoutes(apps *handlers.ApplicationHandler, deployments *handlers.DeploymentHandler, analytics *handlers.AnalyticsHandler) *ApplicationRoutes {
	return &ApplicationRoutes{apps: apps, deployments: deployments, analytics: analytics}
}

func (r *ApplicationRoutes) RegisterRoutes(router *gin.RouterGroup) {
	// Subdomain availability is checked pre-signup, so it stays public.
	router.GET("/check-subdomain/:name", r.apps.CheckSubdomain)

	apps := router.Group("/applications")
	apps.Use(middlewares.Authenticate)
	{
		apps.POST("", r.apps.Create)
		apps.GET("", r.apps.List)
		apps.GET("/:id", r.apps.Get)
		apps.DELETE("/:id", r.apps.Delete)
		apps.POST("/:id/deploy", r.deployments.Deploy)
		apps.GET("/:id/deployments", r.deployments.List)
		apps.GET("/:id/analytics", r.analytics.Summary)
	}

	deployments := router.Group("/deployments")
	deployments.Use(middlewares.Authenticate)
	{
		deployments.GET("/:id", r.deployments.Get)
	}
}
