package services

import (
	"strings"

	"deployhub/internal/apperror"
	"deployhub/internal/models"

	"github.com/google/uuid"
)

type TicketStore interface {
	Create(ticket *models.SupportTicket) error
	GetByID(id uuid.UUID) (*models.SupportTicket, error)
	GetByUserID(userID uuid.UUID) ([]models.SupportTicket, error)
	GetAll() ([]models.SupportTicket, error)
	UpdateStatus(id uuid.UUID, status string) error
}

type TicketService struct {
	tickets TicketStore
}

func NewTicketService(tickets TicketStore) *TicketService {
	return &TicketService{tickets: tickets}
}

func (s *TicketService) Create(userID uuid.UUID, subject, message string) (*models.SupportTicket, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)

	if subject == "" {
		return nil, apperror.ValidationFailed("subject", "subject is required")
	}
	if message == "" {
		return nil, apperror.ValidationFailed("message", "message is required")
	}

	ticket := &models.SupportTicket{
		UserID:  userID,
		Subject: subject,
		Message: message,
		Status:  models.TicketStatusOpen,
	}
	if err := s.tickets.Create(ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

func (s *TicketService) ListForUser(userID uuid.UUID) ([]models.SupportTicket, error) {
	return s.tickets.GetByUserID(userID)
}
