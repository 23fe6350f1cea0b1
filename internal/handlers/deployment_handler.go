package handlers

import (
	"net/http"
	"strings"

	"deployhub/internal/responses"
	"deployhub/internal/services"

	"github.com/gin-gonic/gin"
)

type DeploymentHandler struct {
	deploymentService *services.DeploymentService
}

func NewDeploymentHandler(deploymentService *services.DeploymentService) *DeploymentHandler {
	return &DeploymentHandler{deploymentService: deploymentService}
}

// Deploy handles POST /api/v1/applications/:id/deploy. An optional multipart
// "artifact" file is stored before the pipeline starts; the pipeline itself
// runs detached and the response carries the building deployment for polling.
func (h *DeploymentHandler) Deploy(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	appID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/") {
		fileHeader, err := c.FormFile("artifact")
		if err == nil {
			src, err := fileHeader.Open()
			if err != nil {
				responses.Fail(c, http.StatusBadRequest, err, "Failed to read artifact")
				return
			}
			defer src.Close()

			if _, err := h.deploymentService.SaveArtifact(userID, appID, fileHeader.Filename, src); err != nil {
				responses.Error(c, err)
				return
			}
		}
	}

	deployment, err := h.deploymentService.Deploy(userID, appID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusAccepted, deployment, "Deployment started")
}

// List handles GET /api/v1/applications/:id/deployments
func (h *DeploymentHandler) List(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	appID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	deployments, err := h.deploymentService.ListDeployments(userID, appID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, deployments, "Deployments retrieved successfully")
}

// Get handles GET /api/v1/deployments/:id
func (h *DeploymentHandler) Get(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	deploymentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	deployment, err := h.deploymentService.GetDeployment(userID, deploymentID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, deployment, "Deployment retrieved successfully")
}
