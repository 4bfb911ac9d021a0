package models

import (
	"time"
)

// Folder is a node in the folder tree. Path is materialized at creation time
// from the parent's path and is not recomputed when ancestors change.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent"` // nil = root level
	Path      string    `json:"path"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Ref returns the summary embedded in image responses
func (f *Folder) Ref() *FolderRef {
	return &FolderRef{ID: f.ID, Name: f.Name, Path: f.Path}
}

// IsRoot returns true if the folder is at the root level.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
