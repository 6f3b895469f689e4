package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"fileup/internal/domain"
	"fileup/internal/models"
	"fileup/internal/repository"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repository.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// Create inserts a new folder. Sibling uniqueness is enforced by the partial
// unique indexes, so a raced duplicate insert still surfaces as a conflict.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (id, user_id, parent_id, name, path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		folder.ID,
		folder.UserID,
		folder.ParentID,
		folder.Name,
		folder.Path,
	).Scan(&folder.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
			}
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID, scoped to its owner
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := `
		SELECT id, user_id, parent_id, name, path, created_at
		FROM folders
		WHERE id = $1 AND user_id = $2
	`

	var folder models.Folder
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// FindByNameAndParent returns the sibling with the given name, or nil if none exists
func (r *PostgresFolderRepository) FindByNameAndParent(ctx context.Context, userID string, parentID *string, name string) (*models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = `
			SELECT id, user_id, parent_id, name, path, created_at
			FROM folders
			WHERE user_id = $1 AND parent_id IS NULL AND name = $2
		`
		args = append(args, userID, name)
	} else {
		query = `
			SELECT id, user_id, parent_id, name, path, created_at
			FROM folders
			WHERE user_id = $1 AND parent_id = $2 AND name = $3
		`
		args = append(args, userID, *parentID, name)
	}

	var folder models.Folder
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find folder by name: %w", err)
	}

	return &folder, nil
}

// ListChildren lists immediate child folders of parentID (root level when nil)
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = `
			SELECT id, user_id, parent_id, name, path, created_at
			FROM folders
			WHERE user_id = $1 AND parent_id IS NULL
			ORDER BY created_at ASC
		`
		args = append(args, userID)
	} else {
		query = `
			SELECT id, user_id, parent_id, name, path, created_at
			FROM folders
			WHERE user_id = $1 AND parent_id = $2
			ORDER BY created_at ASC
		`
		args = append(args, userID, *parentID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.UserID,
			&folder.ParentID,
			&folder.Name,
			&folder.Path,
			&folder.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
