package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileup/internal/domain"
	"fileup/internal/models"
	"fileup/internal/repository/memory"
)

func newTreeService() (*TreeService, *memory.FolderRepository, *memory.FileRepository) {
	folders := memory.NewFolderRepository()
	files := memory.NewFileRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTreeService(folders, files, 100, logger), folders, files
}

func storedFixture(name string) *models.StoredFile {
	return &models.StoredFile{
		StoredName:   "file-1700000000000-12345-" + name,
		OriginalName: name,
		SizeBytes:    2048,
		MimeType:     "image/png",
		StoragePath:  "uploads/file-1700000000000-12345-" + name,
	}
}

func TestCreateFolderAtRoot(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, "user-1", "Photos", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, folder.ID)
	assert.Equal(t, "user-1", folder.UserID)
	assert.Nil(t, folder.ParentID)
	assert.Equal(t, "Photos", folder.Name)
	assert.Equal(t, "/Photos", folder.Path)
}

func TestCreateFolderSanitizesName(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, "user-1", "  My   Docs  ", nil)
	require.NoError(t, err)

	assert.Equal(t, "My Docs", folder.Name)
	assert.Equal(t, "/My Docs", folder.Path)
}

func TestCreateFolderInvalidName(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	tests := []string{"", "a", "con", "a/b", "..", ".hidden"}
	for _, name := range tests {
		_, err := svc.CreateFolder(ctx, "user-1", name, nil)
		assert.ErrorIs(t, err, domain.ErrValidation, "name %q", name)
	}
}

func TestCreateFolderNestedPath(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	parent, err := svc.CreateFolder(ctx, "user-1", "Photos", nil)
	require.NoError(t, err)

	child, err := svc.CreateFolder(ctx, "user-1", "Vacation", &parent.ID)
	require.NoError(t, err)

	assert.Equal(t, &parent.ID, child.ParentID)
	assert.Equal(t, "/Photos/Vacation", child.Path)
}

func TestCreateFolderParentNotFound(t *testing.T) {
	svc, folders, _ := newTreeService()
	ctx := context.Background()

	missing := "no-such-folder"
	_, err := svc.CreateFolder(ctx, "user-1", "Vacation", &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nothing was created
	children, err := folders.ListChildren(ctx, nil, "user-1")
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestCreateFolderForeignParent(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	other, err := svc.CreateFolder(ctx, "user-2", "Photos", nil)
	require.NoError(t, err)

	_, err = svc.CreateFolder(ctx, "user-1", "Vacation", &other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateFolderDuplicateSibling(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	_, err := svc.CreateFolder(ctx, "user-1", "Photos", nil)
	require.NoError(t, err)

	_, err = svc.CreateFolder(ctx, "user-1", "Photos", nil)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "folder", conflict.ResourceType)
	assert.NotEmpty(t, conflict.ResourceID)

	// Same name for a different user still succeeds
	_, err = svc.CreateFolder(ctx, "user-2", "Photos", nil)
	assert.NoError(t, err)
}

func TestCreateFolderSameNameDifferentParents(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	a, err := svc.CreateFolder(ctx, "user-1", "2023", nil)
	require.NoError(t, err)
	b, err := svc.CreateFolder(ctx, "user-1", "2024", nil)
	require.NoError(t, err)

	_, err = svc.CreateFolder(ctx, "user-1", "Taxes", &a.ID)
	require.NoError(t, err)
	_, err = svc.CreateFolder(ctx, "user-1", "Taxes", &b.ID)
	assert.NoError(t, err)
}

func TestListChildrenRoot(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	_, err := svc.CreateFolder(ctx, "user-1", "Photos", nil)
	require.NoError(t, err)
	_, err = svc.CreateFolder(ctx, "user-1", "Documents", nil)
	require.NoError(t, err)

	contents, err := svc.ListChildren(ctx, "user-1", nil)
	require.NoError(t, err)

	assert.Nil(t, contents.Folder)
	assert.Len(t, contents.SubFolders, 2)
	assert.Empty(t, contents.Files)
}

func TestListChildrenOneLevelOnly(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	parent, err := svc.CreateFolder(ctx, "user-1", "Photos", nil)
	require.NoError(t, err)
	child, err := svc.CreateFolder(ctx, "user-1", "Vacation", &parent.ID)
	require.NoError(t, err)
	_, err = svc.CreateFolder(ctx, "user-1", "Beach", &child.ID)
	require.NoError(t, err)

	contents, err := svc.ListChildren(ctx, "user-1", &parent.ID)
	require.NoError(t, err)

	require.NotNil(t, contents.Folder)
	assert.Equal(t, parent.ID, contents.Folder.ID)
	require.Len(t, contents.SubFolders, 1)
	assert.Equal(t, child.ID, contents.SubFolders[0].ID)
}

func TestListChildrenFolderNotFound(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	missing := "no-such-folder"
	_, err := svc.ListChildren(ctx, "user-1", &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListChildrenNeverCrossesUsers(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	theirs, err := svc.CreateFolder(ctx, "user-2", "Photos", nil)
	require.NoError(t, err)
	_, err = svc.AttachUploadedFile(ctx, "user-2", &theirs.ID, storedFixture("cat.png"))
	require.NoError(t, err)

	// Root view of user-1 sees nothing of user-2
	contents, err := svc.ListChildren(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Empty(t, contents.SubFolders)
	assert.Empty(t, contents.Files)

	// Supplying another user's folder ID behaves as not found
	_, err = svc.ListChildren(ctx, "user-1", &theirs.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttachUploadedFileRoundTrip(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, "user-1", "Photos", nil)
	require.NoError(t, err)

	file, err := svc.AttachUploadedFile(ctx, "user-1", &folder.ID, storedFixture("cat.png"))
	require.NoError(t, err)

	assert.Equal(t, "cat.png", file.OriginalName)
	assert.Equal(t, ".png", file.Extension)
	assert.Equal(t, int64(2048), file.Size)

	// Appears in its folder
	contents, err := svc.ListChildren(ctx, "user-1", &folder.ID)
	require.NoError(t, err)
	require.Len(t, contents.Files, 1)
	assert.Equal(t, file.ID, contents.Files[0].ID)

	// And nowhere else
	root, err := svc.ListChildren(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Empty(t, root.Files)
}

func TestAttachUploadedFileAtRoot(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	file, err := svc.AttachUploadedFile(ctx, "user-1", nil, storedFixture("dog.gif"))
	require.NoError(t, err)
	assert.Nil(t, file.FolderID)

	root, err := svc.ListChildren(ctx, "user-1", nil)
	require.NoError(t, err)
	require.Len(t, root.Files, 1)
	assert.Equal(t, file.ID, root.Files[0].ID)
}

func TestAttachUploadedFileNoDescriptor(t *testing.T) {
	svc, _, _ := newTreeService()
	ctx := context.Background()

	_, err := svc.AttachUploadedFile(ctx, "user-1", nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAttachUploadedFileForeignFolder(t *testing.T) {
	svc, _, files := newTreeService()
	ctx := context.Background()

	theirs, err := svc.CreateFolder(ctx, "user-2", "Photos", nil)
	require.NoError(t, err)

	_, err = svc.AttachUploadedFile(ctx, "user-1", &theirs.ID, storedFixture("cat.png"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nothing was persisted for either user
	stored, err := files.ListByUser(ctx, "user-1", 100)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestListChildrenFileCap(t *testing.T) {
	folders := memory.NewFolderRepository()
	files := memory.NewFileRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewTreeService(folders, files, 3, logger)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.AttachUploadedFile(ctx, "user-1", nil, storedFixture("cat.png"))
		require.NoError(t, err)
	}

	contents, err := svc.ListChildren(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Len(t, contents.Files, 3)
}
