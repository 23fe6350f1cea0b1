package repositories

import (
	"context"
	"errors"
	"time"

	"deployhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) Create(ticket *models.SupportTicket) error {
	ctx := context.Background()

	ticket.Prepare()

	query := `
		INSERT INTO support_tickets (id, user_id, subject, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.Subject,
		ticket.Message,
		ticket.Status,
		time.Now(),
	)

	return err
}

func (r *TicketRepository) GetByID(id uuid.UUID) (*models.SupportTicket, error) {
	ctx := context.Background()

	query := `SELECT id, user_id, subject, message, status, created_at
		FROM support_tickets WHERE id = $1`

	var t models.SupportTicket
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.UserID,
		&t.Subject,
		&t.Message,
		&t.Status,
		&t.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &t, nil
}

func (r *TicketRepository) GetByUserID(userID uuid.UUID) ([]models.SupportTicket, error) {
	ctx := context.Background()

	query := `SELECT id, user_id, subject, message, status, created_at
		FROM support_tickets WHERE user_id = $1
		ORDER BY created_at DESC`

	return r.queryTickets(ctx, query, userID)
}

func (r *TicketRepository) GetAll() ([]models.SupportTicket, error) {
	ctx := context.Background()

	query := `SELECT id, user_id, subject, message, status, created_at
		FROM support_tickets
		ORDER BY created_at DESC`

	return r.queryTickets(ctx, query)
}

func (r *TicketRepository) UpdateStatus(id uuid.UUID, status string) error {
	ctx := context.Background()

	query := `UPDATE support_tickets SET status = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TicketRepository) queryTickets(ctx context.Context, query string, args ...any) ([]models.SupportTicket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.SupportTicket
	for rows.Next() {
		var t models.SupportTicket
		err := rows.Scan(&t.ID, &t.UserID, &t.Subject, &t.Message, &t.Status, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}

	return tickets, rows.Err()
}
