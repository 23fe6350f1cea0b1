package routes

import (
	"deployhub/internal/handlers"
	"deployhub/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type FileRoutes struct {
	handler *handlers.FileHandler
}

func NewFileRoutes(handler *handlers.FileHandler) *FileRoutes {
	return &FileRoutes{handler: handler}
}

func (r *FileRoutes) RegisterRoutes(router *gin.RouterGroup) {
	// Share links are handed out to third parties, so download is public.
	router.GET("/share/:token", r.handler.Download)

	files := router.Group("/files")
	files.Use(middlewares.Authenticate)
	{
		files.POST("", r.handler.Upload)
		files.GET("", r.handler.List)
		files.DELETE("/:id", r.handler.Delete)
	}
}
