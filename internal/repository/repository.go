// Package repository defines the persistence gateway used by the services.
// Implementations live in the postgres and memory sub-packages.
package repository

import (
	"context"

	"fileup/internal/models"
)

// UserRepository stores user accounts. Emails are unique case-insensitively.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// FolderRepository stores the per-user folder forest. A nil parent ID means
// root level. Sibling uniqueness is enforced by the backing store, so Create
// reports a conflict even when two requests race past the pre-check.
type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)
	FindByNameAndParent(ctx context.Context, userID string, parentID *string, name string) (*models.Folder, error)
	ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error)
}

// FileRepository stores uploaded file records. A nil folder ID means root level.
type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	ListByFolder(ctx context.Context, folderID *string, userID string, limit int) ([]models.File, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.File, error)
}

// SessionRepository stores login sessions keyed by opaque token.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
