package services

import (
	"fmt"
	"time"

	"deployhub/internal/apperror"
	"deployhub/internal/config"
	"deployhub/internal/models"
	"deployhub/internal/utils"

	"github.com/google/uuid"
)

// AdminUserStore widens UserStore with the management operations only the
// admin surface uses.
type AdminUserStore interface {
	FindUserByID(id uuid.UUID) (*models.User, error)
	FindAll() ([]models.User, error)
	SetPremium(id uuid.UUID, premium bool) error
	CountUsers() (int64, error)
}

// AdminSessionStore holds short-lived admin session tokens.
type AdminSessionStore interface {
	Create(token string, ttl time.Duration) error
	Exists(token string) (bool, error)
	Delete(token string) error
}

// Counter is satisfied by any repository exposing a table-wide count.
type Counter interface {
	CountAll() (int64, error)
}

type AdminService struct {
	cfg         config.AdminConfig
	sessions    AdminSessionStore
	users       AdminUserStore
	tickets     TicketStore
	apps        Counter
	deployments Counter
	events      Counter
}

func NewAdminService(cfg config.AdminConfig, sessions AdminSessionStore, users AdminUserStore, tickets TicketStore, apps, deployments, events Counter) *AdminService {
	return &AdminService{
		cfg:         cfg,
		sessions:    sessions,
		users:       users,
		tickets:     tickets,
		apps:        apps,
		deployments: deployments,
		events:      events,
	}
}

// Login checks the fixed credential pair and issues a session token. Both
// comparisons always run so timing doesn't reveal which field was wrong.
func (s *AdminService) Login(email, password string) (string, error) {
	emailOK := utils.SecureCompare(email, s.cfg.Email)
	passwordOK := utils.SecureCompare(password, s.cfg.Password)
	if !emailOK || !passwordOK {
		return "", apperror.Unauthorized("invalid admin credentials")
	}

	token, err := utils.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	if err := s.sessions.Create(token, s.cfg.SessionTTL); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// ValidateSession reports whether the token maps to a live admin session.
func (s *AdminService) ValidateSession(token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return s.sessions.Exists(token)
}

func (s *AdminService) Logout(token string) error {
	return s.sessions.Delete(token)
}

func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.users.FindAll()
}

func (s *AdminService) SetUserTier(id uuid.UUID, premium bool) (*models.User, error) {
	user, err := s.users.FindUserByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user", id.String())
	}

	if err := s.users.SetPremium(id, premium); err != nil {
		return nil, fmt.Errorf("failed to update tier: %w", err)
	}
	user.IsPremium = premium

	return user, nil
}

// PlatformStats is the admin dashboard's totals view.
type PlatformStats struct {
	Users        int64 `json:"users"`
	Applications int64 `json:"applications"`
	Deployments  int64 `json:"deployments"`
	Visits       int64 `json:"visits"`
}

func (s *AdminService) Stats() (*PlatformStats, error) {
	users, err := s.users.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	apps, err := s.apps.CountAll()
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	deployments, err := s.deployments.CountAll()
	if err != nil {
		return nil, fmt.Errorf("failed to count deployments: %w", err)
	}
	visits, err := s.events.CountAll()
	if err != nil {
		return nil, fmt.Errorf("failed to count visits: %w", err)
	}

	return &PlatformStats{
		Users:        users,
		Applications: apps,
		Deployments:  deployments,
		Visits:       visits,
	}, nil
}

func (s *AdminService) ListTickets() ([]models.SupportTicket, error) {
	return s.tickets.GetAll()
}

func (s *AdminService) SetTicketStatus(id uuid.UUID, status string) (*models.SupportTicket, error) {
	if status != models.TicketStatusOpen && status != models.TicketStatusClosed {
		return nil, apperror.ValidationFailed("status", "status must be open or closed")
	}

	ticket, err := s.tickets.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticket: %w", err)
	}
	if ticket == nil {
		return nil, apperror.NotFound("ticket", id.String())
	}

	if err := s.tickets.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	ticket.Status = status

	return ticket, nil
}
