package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"fileup/internal/domain"
	"fileup/internal/models"
	"fileup/internal/naming"
	"fileup/internal/repository"
)

// TreeService implements the folder-tree operations: creating folders,
// listing one level of a folder's contents and attaching uploaded files.
// The acting user ID is always taken from an authenticated session; the
// service scopes every query by it.
type TreeService struct {
	folders       repository.FolderRepository
	files         repository.FileRepository
	fileListLimit int
	logger        *slog.Logger
}

// NewTreeService creates a new tree service. fileListLimit bounds the number
// of files returned per listing, uniformly at root and below.
func NewTreeService(folders repository.FolderRepository, files repository.FileRepository, fileListLimit int, logger *slog.Logger) *TreeService {
	return &TreeService{
		folders:       folders,
		files:         files,
		fileListLimit: fileListLimit,
		logger:        logger,
	}
}

// CreateFolder creates a folder named name under parentID (root when nil).
// The name is validated and sanitized first; the parent must exist and belong
// to the acting user; no sibling may already carry the sanitized name.
func (s *TreeService) CreateFolder(ctx context.Context, userID, name string, parentID *string) (*models.Folder, error) {
	sanitized, err := naming.Validate(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	parentPath := ""
	if parentID != nil {
		parent, err := s.folders.GetByID(ctx, *parentID, userID)
		if err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
		parentPath = parent.Path
	}

	// Pre-check gives the common case a clean answer with the existing
	// folder's ID; the unique index closes the race two concurrent
	// creates would otherwise win together.
	existing, err := s.folders.FindByNameAndParent(ctx, userID, parentID, sanitized)
	if err != nil {
		return nil, fmt.Errorf("check for duplicate name: %w", err)
	}
	if existing != nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", sanitized),
			ResourceType: "folder",
			ResourceID:   existing.ID,
		}
	}

	folder := &models.Folder{
		ID:       uuid.NewString(),
		UserID:   userID,
		ParentID: parentID,
		Name:     sanitized,
		Path:     parentPath + "/" + sanitized,
	}

	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", userID,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// ListChildren returns one level of the tree: the folder itself (nil at
// root), its immediate sub-folders and the files stored directly inside it.
// No recursive descent.
func (s *TreeService) ListChildren(ctx context.Context, userID string, folderID *string) (*models.FolderContents, error) {
	var current *models.Folder
	if folderID != nil {
		folder, err := s.folders.GetByID(ctx, *folderID, userID)
		if err != nil {
			return nil, err
		}
		current = folder
	}

	subFolders, err := s.folders.ListChildren(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	files, err := s.files.ListByFolder(ctx, folderID, userID, s.fileListLimit)
	if err != nil {
		return nil, err
	}

	return &models.FolderContents{
		Folder:     current,
		SubFolders: subFolders,
		Files:      files,
	}, nil
}

// AttachUploadedFile records a stored upload as a file inside folderID (root
// when nil). A non-nil target folder must exist and belong to the acting user.
func (s *TreeService) AttachUploadedFile(ctx context.Context, userID string, folderID *string, stored *models.StoredFile) (*models.File, error) {
	if stored == nil {
		return nil, fmt.Errorf("%w: no file uploaded", domain.ErrValidation)
	}

	if folderID != nil {
		if _, err := s.folders.GetByID(ctx, *folderID, userID); err != nil {
			return nil, fmt.Errorf("target folder: %w", err)
		}
	}

	file := &models.File{
		ID:           uuid.NewString(),
		UserID:       userID,
		FolderID:     folderID,
		Name:         stored.StoredName,
		OriginalName: stored.OriginalName,
		Size:         stored.SizeBytes,
		MimeType:     stored.MimeType,
		StoragePath:  stored.StoragePath,
		Extension:    filepath.Ext(stored.OriginalName),
	}

	if err := s.files.Create(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file attached",
		"id", file.ID,
		"name", file.Name,
		"user_id", userID,
		"folder_id", file.FolderID,
		"size", file.Size,
	)

	return file, nil
}
