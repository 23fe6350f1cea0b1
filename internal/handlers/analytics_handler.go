package handlers

import (
	"net/http"
	"strconv"

	"deployhub/internal/models"
	"deployhub/internal/responses"
	"deployhub/internal/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

type trackRequest struct {
	Path    string `json:"path"`
	Referer string `json:"referer"`
	Country string `json:"country"`
	City    string `json:"city"`
}

// Track handles POST /api/v1/track/:subdomain. The body is optional; visitor
// IP and user agent always come from the request itself.
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req trackRequest
	_ = c.ShouldBindJSON(&req)

	event := &models.AnalyticsEvent{
		VisitorIP: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Country:   req.Country,
		City:      req.City,
		Path:      req.Path,
		Referer:   req.Referer,
	}

	if err := h.analyticsService.Track(c.Param("subdomain"), event); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusCreated, nil, "Visit recorded")
}

// Summary handles GET /api/v1/applications/:id/analytics
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	appID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.Query("days"))

	summary, err := h.analyticsService.Summary(userID, appID, days)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, summary, "Analytics retrieved successfully")
}
