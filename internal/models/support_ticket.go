package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)

type SupportTicket struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *SupportTicket) Prepare() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TicketStatusOpen
	}
}
