// Package memory provides in-memory implementations of the persistence
// gateway, mirroring the conflict and not-found semantics of the postgres
// implementations. Used in tests and for running without a database.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fileup/internal/domain"
	"fileup/internal/models"
	"fileup/internal/repository"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]models.User)}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("an account with email %q already exists", user.Email),
				ResourceType: "user",
				ResourceID:   existing.ID,
			}
		}
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

// FolderRepository is an in-memory repository.FolderRepository.
type FolderRepository struct {
	mu      sync.RWMutex
	folders []models.Folder
}

func NewFolderRepository() *FolderRepository {
	return &FolderRepository{}
}

func (r *FolderRepository) Create(_ context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.folders {
		if existing.UserID == folder.UserID &&
			sameParent(existing.ParentID, folder.ParentID) &&
			existing.Name == folder.Name {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
				ResourceID:   existing.ID,
			}
		}
	}

	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now()
	}
	r.folders = append(r.folders, *folder)
	return nil
}

func (r *FolderRepository) GetByID(_ context.Context, id, userID string) (*models.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, folder := range r.folders {
		if folder.ID == id && folder.UserID == userID {
			f := folder
			return &f, nil
		}
	}
	return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

func (r *FolderRepository) FindByNameAndParent(_ context.Context, userID string, parentID *string, name string) (*models.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, folder := range r.folders {
		if folder.UserID == userID && sameParent(folder.ParentID, parentID) && folder.Name == name {
			f := folder
			return &f, nil
		}
	}
	return nil, nil
}

func (r *FolderRepository) ListChildren(_ context.Context, parentID *string, userID string) ([]models.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var children []models.Folder
	for _, folder := range r.folders {
		if folder.UserID == userID && sameParent(folder.ParentID, parentID) {
			children = append(children, folder)
		}
	}
	return children, nil
}

// FileRepository is an in-memory repository.FileRepository.
type FileRepository struct {
	mu    sync.RWMutex
	files []models.File
}

func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

func (r *FileRepository) Create(_ context.Context, file *models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}
	r.files = append(r.files, *file)
	return nil
}

func (r *FileRepository) ListByFolder(_ context.Context, folderID *string, userID string, limit int) ([]models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var files []models.File
	for _, file := range r.files {
		if file.UserID == userID && sameParent(file.FolderID, folderID) {
			files = append(files, file)
			if len(files) == limit {
				break
			}
		}
	}
	return files, nil
}

func (r *FileRepository) ListByUser(_ context.Context, userID string, limit int) ([]models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var files []models.File
	for _, file := range r.files {
		if file.UserID == userID {
			files = append(files, file)
			if len(files) == limit {
				break
			}
		}
	}
	return files, nil
}

// SessionRepository is an in-memory repository.SessionRepository.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]models.Session)}
}

func (r *SessionRepository) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	r.sessions[session.Token] = *session
	return nil
}

func (r *SessionRepository) GetByToken(_ context.Context, token string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[token]
	if !ok || !session.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
	return nil
}

func (r *SessionRepository) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	now := time.Now()
	for token, session := range r.sessions {
		if !session.ExpiresAt.After(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Interface conformance checks
var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.FolderRepository  = (*FolderRepository)(nil)
	_ repository.FileRepository    = (*FileRepository)(nil)
	_ repository.SessionRepository = (*SessionRepository)(nil)
)
