package models

import (
	"time"
)

type Folder struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	Path      string    `json:"path" db:"path"` // Materialized path, fixed at creation
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateFolderRequest struct {
	FolderName string `json:"folderName"`
}

// FolderContents is one level of the tree: the folder itself (nil at root),
// its immediate sub-folders and the files stored directly inside it.
type FolderContents struct {
	Folder     *Folder  `json:"currentFolder"`
	SubFolders []Folder `json:"myFolders"`
	Files      []File   `json:"savedFile"`
}
