package handlers

import (
	"net/http"

	"deployhub/internal/models"
	"deployhub/internal/responses"
	"deployhub/internal/services"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appService *services.ApplicationService
}

func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

type createApplicationRequest struct {
	Name         string  `json:"name" binding:"required"`
	Subdomain    string  `json:"subdomain" binding:"required"`
	SourceKind   string  `json:"source_kind" binding:"required"`
	RepoURL      *string `json:"repo_url"`
	BuildCommand *string `json:"build_command"`
	OutputDir    *string `json:"output_dir"`
}

// Create handles POST /api/v1/applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req createApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	app, err := h.appService.Create(userID, &models.Application{
		Name:         req.Name,
		Subdomain:    req.Subdomain,
		SourceKind:   req.SourceKind,
		RepoURL:      req.RepoURL,
		BuildCommand: req.BuildCommand,
		OutputDir:    req.OutputDir,
	})
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusCreated, app, "Application created successfully")
}

// List handles GET /api/v1/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	apps, err := h.appService.List(userID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, apps, "Applications retrieved successfully")
}

// Get handles GET /api/v1/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	appID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	app, err := h.appService.Get(userID, appID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, app, "Application retrieved successfully")
}

// Delete handles DELETE /api/v1/applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	appID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.appService.Delete(userID, appID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, nil, "Application deleted successfully")
}

// CheckSubdomain handles GET /api/v1/check-subdomain/:name
func (h *ApplicationHandler) CheckSubdomain(c *gin.Context) {
	available, err := h.appService.CheckSubdomain(c.Param("name"))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"available": available}, "Subdomain checked")
}
