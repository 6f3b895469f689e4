package upload

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"fileup/internal/domain"
	"fileup/internal/models"
)

// DiskStore writes accepted uploads into a flat content directory. Stored
// names carry a timestamp and a random suffix so concurrent uploads of the
// same original name never collide.
type DiskStore struct {
	dir    string
	policy *Policy
	logger *slog.Logger
}

// NewDiskStore creates the content directory if needed and returns the store.
func NewDiskStore(dir string, policy *Policy, logger *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	return &DiskStore{
		dir:    dir,
		policy: policy,
		logger: logger,
	}, nil
}

// Dir returns the content directory the store writes into.
func (s *DiskStore) Dir() string {
	return s.dir
}

// MaxSizeBytes returns the policy's per-file size limit.
func (s *DiskStore) MaxSizeBytes() int64 {
	return s.policy.MaxSizeBytes
}

// Save validates one multipart part against the policy, writes it to disk and
// returns the stored-file descriptor. Policy rejections are validation errors;
// everything else is an I/O failure.
func (s *DiskStore) Save(part multipart.File, header *multipart.FileHeader) (*models.StoredFile, error) {
	if header.Size > s.policy.MaxSizeBytes {
		return nil, fmt.Errorf("%w: file exceeds the %d byte limit", domain.ErrValidation, s.policy.MaxSizeBytes)
	}

	mimeType := header.Header.Get("Content-Type")
	if !s.policy.Allows(mimeType) {
		return nil, fmt.Errorf("%w: file type %q is not allowed", domain.ErrValidation, mimeType)
	}

	storedName := s.storedName(header.Filename)
	storagePath := filepath.Join(s.dir, storedName)

	dst, err := os.OpenFile(storagePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create stored file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(part, s.policy.MaxSizeBytes))
	if err != nil {
		os.Remove(storagePath)
		return nil, fmt.Errorf("write stored file: %w", err)
	}

	s.logger.Debug("upload stored",
		"stored_name", storedName,
		"original_name", header.Filename,
		"size", written,
	)

	return &models.StoredFile{
		StoredName:   storedName,
		OriginalName: header.Filename,
		SizeBytes:    written,
		MimeType:     mimeType,
		StoragePath:  storagePath,
	}, nil
}

// storedName builds "file-<unixms>-<rand>-<original>", with the original name
// stripped of any client-supplied directory components.
func (s *DiskStore) storedName(originalName string) string {
	base := filepath.Base(filepath.Clean(originalName))
	return fmt.Sprintf("file-%d-%d-%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), base)
}
