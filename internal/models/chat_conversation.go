package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatConversation stores one message/response exchange. The row is created
// only after the upstream call resolves, so Response is never empty — on
// upstream failure it holds the fallback text.
type ChatConversation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *ChatConversation) Prepare() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
}
