package handlers

import (
	"net/http"

	"deployhub/internal/responses"
	"deployhub/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type setTierRequest struct {
	IsPremium *bool `json:"is_premium" binding:"required"`
}

type setTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Login handles POST /api/v1/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	token, err := h.adminService.Login(req.Email, req.Password)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"token": token}, "Admin logged in successfully")
}

// Logout handles POST /api/v1/admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		if err := h.adminService.Logout(authHeader[7:]); err != nil {
			responses.Error(c, err)
			return
		}
	}

	responses.Success(c, http.StatusOK, nil, "Admin logged out successfully")
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, users, "Users retrieved successfully")
}

// SetUserTier handles PATCH /api/v1/admin/users/:id/tier
func (h *AdminHandler) SetUserTier(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req setTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	user, err := h.adminService.SetUserTier(userID, *req.IsPremium)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, user, "User tier updated successfully")
}

// Stats handles GET /api/v1/admin/analytics
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, stats, "Platform analytics retrieved successfully")
}

// ListTickets handles GET /api/v1/admin/tickets
func (h *AdminHandler) ListTickets(c *gin.Context) {
	tickets, err := h.adminService.ListTickets()
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, tickets, "Tickets retrieved successfully")
}

// SetTicketStatus handles PATCH /api/v1/admin/tickets/:id
func (h *AdminHandler) SetTicketStatus(c *gin.Context) {
	ticketID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req setTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	ticket, err := h.adminService.SetTicketStatus(ticketID, req.Status)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, ticket, "Ticket updated successfully")
}
