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

type FileRepository struct {
	pool *pgxpool.Pool
}

func NewFileRepository(pool *pgxpool.Pool) *FileRepository {
	return &FileRepository{pool: pool}
}

func (r *FileRepository) Create(file *models.SharedFile) error {
	ctx := context.Background()

	file.Prepare()

	query := `
		INSERT INTO shared_files
			(id, user_id, file_name, size_bytes, token, storage_path, expires_at, download_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	_, err := r.pool.Exec(ctx, query,
		file.ID,
		file.UserID,
		file.FileName,
		file.SizeBytes,
		file.Token,
		file.StoragePath,
		file.ExpiresAt,
		file.DownloadCount,
		now,
	)
	if err == nil {
		file.CreatedAt = now
	}

	return err
}

func (r *FileRepository) GetByID(id uuid.UUID) (*models.SharedFile, error) {
	ctx := context.Background()

	query := fileSelectColumns + ` FROM shared_files WHERE id = $1`

	var f models.SharedFile
	err := r.pool.QueryRow(ctx, query, id).Scan(fileScanTargets(&f)...)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &f, nil
}

func (r *FileRepository) GetByToken(token string) (*models.SharedFile, error) {
	ctx := context.Background()

	query := fileSelectColumns + ` FROM shared_files WHERE token = $1`

	var f models.SharedFile
	err := r.pool.QueryRow(ctx, query, token).Scan(fileScanTargets(&f)...)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &f, nil
}

func (r *FileRepository) GetByUserID(userID uuid.UUID) ([]models.SharedFile, error) {
	ctx := context.Background()

	query := fileSelectColumns + `
		FROM shared_files WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.SharedFile
	for rows.Next() {
		var f models.SharedFile
		if err := rows.Scan(fileScanTargets(&f)...); err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

func (r *FileRepository) IncrementDownloadCount(id uuid.UUID) error {
	ctx := context.Background()

	query := `UPDATE shared_files SET download_count = download_count + 1 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *FileRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	query := `DELETE FROM shared_files WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

const fileSelectColumns = `SELECT id, user_id, file_name, size_bytes, token, storage_path, expires_at, download_count, created_at`

func fileScanTargets(f *models.SharedFile) []any {
	return []any{
		&f.ID,
		&f.UserID,
		&f.FileName,
		&f.SizeBytes,
		&f.Token,
		&f.StoragePath,
		&f.ExpiresAt,
		&f.DownloadCount,
		&f.CreatedAt,
	}
}
