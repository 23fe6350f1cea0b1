package repositories

import (
	"context"
	"time"

	"deployhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

func (r *ChatRepository) Create(conversation *models.ChatConversation) error {
	ctx := context.Background()

	conversation.Prepare()

	query := `
		INSERT INTO chat_conversations (id, user_id, message, response, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		conversation.ID,
		conversation.UserID,
		conversation.Message,
		conversation.Response,
		time.Now(),
	)

	return err
}

func (r *ChatRepository) GetByUserID(userID uuid.UUID, limit int) ([]models.ChatConversation, error) {
	ctx := context.Background()

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, message, response, created_at
		FROM chat_conversations WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []models.ChatConversation
	for rows.Next() {
		var c models.ChatConversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Message, &c.Response, &c.CreatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}

	return conversations, rows.Err()
}
