package repositories

import (
	"context"
	"time"

	"deployhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

func (r *AnalyticsRepository) Create(event *models.AnalyticsEvent) error {
	ctx := context.Background()

	event.Prepare()

	query := `
		INSERT INTO analytics_events
			(id, application_id, visitor_ip, user_agent, country, city, path, referer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.ApplicationID,
		event.VisitorIP,
		event.UserAgent,
		event.Country,
		event.City,
		event.Path,
		event.Referer,
		time.Now(),
	)

	return err
}

// GetByApplicationIDSince returns events after the cutoff, newest-first.
func (r *AnalyticsRepository) GetByApplicationIDSince(applicationID uuid.UUID, since time.Time) ([]models.AnalyticsEvent, error) {
	ctx := context.Background()

	query := `
		SELECT id, application_id, visitor_ip, user_agent, country, city, path, referer, created_at
		FROM analytics_events
		WHERE application_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, applicationID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.AnalyticsEvent
	for rows.Next() {
		var e models.AnalyticsEvent
		err := rows.Scan(
			&e.ID,
			&e.ApplicationID,
			&e.VisitorIP,
			&e.UserAgent,
			&e.Country,
			&e.City,
			&e.Path,
			&e.Referer,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountByDay buckets events per day, oldest bucket first.
func (r *AnalyticsRepository) CountByDay(applicationID uuid.UUID, since time.Time) ([]models.DayCount, error) {
	ctx := context.Background()

	query := `
		SELECT date_trunc('day', created_at) AS day, COUNT(*)
		FROM analytics_events
		WHERE application_id = $1 AND created_at >= $2
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := r.pool.Query(ctx, query, applicationID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []models.DayCount
	for rows.Next() {
		var b models.DayCount
		if err := rows.Scan(&b.Day, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}

	return buckets, rows.Err()
}

// CountByCountry buckets events per country, most visits first.
func (r *AnalyticsRepository) CountByCountry(applicationID uuid.UUID, since time.Time) ([]models.CountryCount, error) {
	ctx := context.Background()

	query := `
		SELECT country, COUNT(*)
		FROM analytics_events
		WHERE application_id = $1 AND created_at >= $2
		GROUP BY country
		ORDER BY COUNT(*) DESC
	`

	rows, err := r.pool.Query(ctx, query, applicationID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []models.CountryCount
	for rows.Next() {
		var b models.CountryCount
		if err := rows.Scan(&b.Country, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}

	return buckets, rows.Err()
}

func (r *AnalyticsRepository) CountAll() (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analytics_events`).Scan(&count)
	return count, err
}
