package entities

import (
	"time"
)

// Folder is a node in the namespace tree. A nil ParentID means the
// folder lives at the virtual root, which is never stored as a row.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsRoot reports whether the folder sits directly under the root.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
