package entities

import (
	"time"
)

// FileRecord is the metadata row for a stored file. Name is the opaque
// blob storage key and never changes; OriginalName is what the user
// sees and is the only mutable field. A nil FolderID means the file
// resides at the root.
type FileRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	FolderID     *string   `json:"folderId"`
	UploadDate   time.Time `json:"uploadDate"`
}

// NamespaceStats aggregates all FileRecords in the namespace. Both
// fields are zero, not null, for an empty namespace.
type NamespaceStats struct {
	Count     int64 `json:"count"`
	TotalSize int64 `json:"totalSize"`
}
