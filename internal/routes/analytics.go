package routes

import (
	"deployhub/internal/handlers"

	"github.com/gin-gonic/gin"
)

type AnalyticsRoutes struct {
	handler *handlers.AnalyticsHandler
}

func NewAnalyticsRoutes(handler *handlers.AnalyticsHandler) *AnalyticsRoutes {
	return &AnalyticsRoutes{handler: handler}
}

func (r *AnalyticsRoutes) RegisterRoutes(router *gin.RouterGroup) {
	// Tracking is called from deployed applications, so no auth.
	router.POST("/track/:subdomain", r.handler.Track)
}
