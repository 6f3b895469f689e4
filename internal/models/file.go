package models

import (
	"time"
)

type File struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	FolderID     *string   `json:"folder_id" db:"folder_id"` // NULL = root level
	Name         string    `json:"name" db:"name"`           // stored (generated) name
	OriginalName string    `json:"original_name" db:"original_name"`
	Size         int64     `json:"size" db:"size"`
	MimeType     string    `json:"mime_type" db:"mime_type"`
	StoragePath  string    `json:"storage_path" db:"storage_path"`
	Extension    string    `json:"extension" db:"extension"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// StoredFile describes a file the upload adapter has already written to disk.
type StoredFile struct {
	StoredName   string
	OriginalName string
	SizeBytes    int64
	MimeType     string
	StoragePath  string
}
