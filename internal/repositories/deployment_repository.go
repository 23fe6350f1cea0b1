package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deployhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeploymentRepository struct {
	pool *pgxpool.Pool
}

func NewDeploymentRepository(pool *pgxpool.Pool) *DeploymentRepository {
	return &DeploymentRepository{pool: pool}
}

func (r *DeploymentRepository) Create(deployment *models.Deployment) error {
	ctx := context.Background()

	deployment.Prepare()

	query := `
		INSERT INTO deployments (id, application_id, status, build_logs, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now()
	_, err := r.pool.Exec(ctx, query,
		deployment.ID,
		deployment.ApplicationID,
		deployment.Status,
		deployment.BuildLogs,
		now,
	)
	if err == nil {
		deployment.CreatedAt = now
	}

	return err
}

func (r *DeploymentRepository) GetByID(id uuid.UUID) (*models.Deployment, error) {
	ctx := context.Background()

	query := `SELECT id, application_id, status, build_logs, analysis_result, deployed_at, created_at
		FROM deployments WHERE id = $1`

	var d models.Deployment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.ApplicationID,
		&d.Status,
		&d.BuildLogs,
		&d.AnalysisResult,
		&d.DeployedAt,
		&d.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &d, nil
}

// GetByApplicationID returns deployment history newest-first.
func (r *DeploymentRepository) GetByApplicationID(applicationID uuid.UUID) ([]models.Deployment, error) {
	ctx := context.Background()

	query := `SELECT id, application_id, status, build_logs, analysis_result, deployed_at, created_at
		FROM deployments WHERE application_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deployments []models.Deployment
	for rows.Next() {
		var d models.Deployment
		err := rows.Scan(
			&d.ID,
			&d.ApplicationID,
			&d.Status,
			&d.BuildLogs,
			&d.AnalysisResult,
			&d.DeployedAt,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, d)
	}

	return deployments, rows.Err()
}

// AppendLog appends a line to build_logs in place. Logs are append-only; no
// code path ever rewrites existing content.
func (r *DeploymentRepository) AppendLog(id uuid.UUID, line string) error {
	ctx := context.Background()

	query := `UPDATE deployments SET build_logs = build_logs || $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, line+"\n")
	return err
}

func (r *DeploymentRepository) SetAnalysisResult(id uuid.UUID, result string) error {
	ctx := context.Background()

	query := `UPDATE deployments SET analysis_result = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, result)
	return err
}

// Complete marks the deployment successful and flips the owning application
// to live in a single transaction, so a crash can't leave a successful
// deployment against a non-live application.
func (r *DeploymentRepository) Complete(deploymentID, applicationID uuid.UUID, deploymentURL string) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	_, err = tx.Exec(ctx,
		`UPDATE deployments SET status = $2, deployed_at = $3 WHERE id = $1`,
		deploymentID, models.DeploymentStatusSuccess, now,
	)
	if err != nil {
		return fmt.Errorf("failed to mark deployment successful: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE applications SET status = $2, deployment_url = $3, last_deployed_at = $4 WHERE id = $1`,
		applicationID, models.AppStatusLive, deploymentURL, now,
	)
	if err != nil {
		return fmt.Errorf("failed to mark application live: %w", err)
	}

	return tx.Commit(ctx)
}

// MarkFailed is the only path to the failed terminal state. The failure line
// is appended before the status flips; the application is failed best-effort
// afterwards.
func (r *DeploymentRepository) MarkFailed(deploymentID uuid.UUID, line string) error {
	ctx := context.Background()

	query := `UPDATE deployments SET status = $2, build_logs = build_logs || $3 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, deploymentID, models.DeploymentStatusFailed, line+"\n")
	return err
}

func (r *DeploymentRepository) CountAll() (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM deployments`).Scan(&count)
	return count, err
}
