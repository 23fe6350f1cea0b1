package repositories

import (
	"context"
	"errors"
	"time"

	"deployhub/internal/apperror"
	"deployhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) Create(app *models.Application) error {
	ctx := context.Background()

	app.Prepare()

	query := `
		INSERT INTO applications
			(id, user_id, name, subdomain, source_kind, repo_url, build_command, output_dir, status, storage_used_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		app.ID,
		app.UserID,
		app.Name,
		app.Subdomain,
		app.SourceKind,
		app.RepoURL,
		app.BuildCommand,
		app.OutputDir,
		app.Status,
		app.StorageUsedBytes,
		time.Now(),
	)

	// The UNIQUE constraint on subdomain is the source of truth; the service's
	// pre-check only exists for a friendlier error message.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperror.Conflict("application", "subdomain already taken")
	}

	return err
}

func (r *ApplicationRepository) GetByID(id uuid.UUID) (*models.Application, error) {
	ctx := context.Background()

	query := appSelectColumns + ` FROM applications WHERE id = $1`

	var app models.Application
	err := r.pool.QueryRow(ctx, query, id).Scan(appScanTargets(&app)...)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &app, nil
}

func (r *ApplicationRepository) GetBySubdomain(subdomain string) (*models.Application, error) {
	ctx := context.Background()

	query := appSelectColumns + ` FROM applications WHERE subdomain = $1`

	var app models.Application
	err := r.pool.QueryRow(ctx, query, subdomain).Scan(appScanTargets(&app)...)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &app, nil
}

// GetByUserID returns the user's applications ordered newest-first.
func (r *ApplicationRepository) GetByUserID(userID uuid.UUID) ([]models.Application, error) {
	ctx := context.Background()

	query := appSelectColumns + `
		FROM applications WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(appScanTargets(&app)...); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

func (r *ApplicationRepository) SubdomainExists(subdomain string) (bool, error) {
	ctx := context.Background()

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE subdomain = $1)`
	err := r.pool.QueryRow(ctx, query, subdomain).Scan(&exists)
	return exists, err
}

func (r *ApplicationRepository) CountByUserID(userID uuid.UUID) (int64, error) {
	ctx := context.Background()

	var count int64
	query := `SELECT COUNT(*) FROM applications WHERE user_id = $1`
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *ApplicationRepository) CountAll() (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count)
	return count, err
}

func (r *ApplicationRepository) UpdateStatus(id uuid.UUID, status string) error {
	ctx := context.Background()

	query := `UPDATE applications SET status = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, status)
	return err
}

func (r *ApplicationRepository) AddStorageUsed(id uuid.UUID, bytes int64) error {
	ctx := context.Background()

	query := `UPDATE applications SET storage_used_bytes = storage_used_bytes + $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, bytes)
	return err
}

func (r *ApplicationRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	query := `DELETE FROM applications WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

const appSelectColumns = `SELECT id, user_id, name, subdomain, source_kind, repo_url, build_command, output_dir,
	status, deployment_url, storage_used_bytes, last_deployed_at, created_at`

func appScanTargets(app *models.Application) []any {
	return []any{
		&app.ID,
		&app.UserID,
		&app.Name,
		&app.Subdomain,
		&app.SourceKind,
		&app.RepoURL,
		&app.BuildCommand,
		&app.OutputDir,
		&app.Status,
		&app.DeploymentURL,
		&app.StorageUsedBytes,
		&app.LastDeployedAt,
		&app.CreatedAt,
	}
}
