package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fileup/internal/domain"
	"fileup/internal/models"
	"fileup/internal/repository"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repository.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// Create inserts a new file record
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, user_id, folder_id, name, original_name, size, mime_type, storage_path, extension)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		file.ID,
		file.UserID,
		file.FolderID,
		file.Name,
		file.OriginalName,
		file.Size,
		file.MimeType,
		file.StoragePath,
		file.Extension,
	).Scan(&file.CreatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder for file %q: %w", file.OriginalName, domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// ListByFolder lists files directly inside folderID (root level when nil),
// bounded by limit
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID *string, userID string, limit int) ([]models.File, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = `
			SELECT id, user_id, folder_id, name, original_name, size, mime_type, storage_path, extension, created_at
			FROM files
			WHERE user_id = $1 AND folder_id IS NULL
			ORDER BY created_at ASC
			LIMIT $2
		`
		args = append(args, userID, limit)
	} else {
		query = `
			SELECT id, user_id, folder_id, name, original_name, size, mime_type, storage_path, extension, created_at
			FROM files
			WHERE user_id = $1 AND folder_id = $2
			ORDER BY created_at ASC
			LIMIT $3
		`
		args = append(args, userID, *folderID, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	return scanFiles(rows)
}

// ListByUser lists all of a user's files regardless of folder, bounded by limit
func (r *PostgresFileRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.File, error) {
	query := `
		SELECT id, user_id, folder_id, name, original_name, size, mime_type, storage_path, extension, created_at
		FROM files
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list user files: %w", err)
	}
	defer rows.Close()

	return scanFiles(rows)
}

func scanFiles(rows pgx.Rows) ([]models.File, error) {
	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.UserID,
			&file.FolderID,
			&file.Name,
			&file.OriginalName,
			&file.Size,
			&file.MimeType,
			&file.StoragePath,
			&file.Extension,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}
