package domain

import "time"

// Project pairs a rendered HTML snapshot with the re-editable editor
// state that produced it. Both versions are opaque strings to the
// backend and are always written together.
// It is intentionally storage-agnostic and used across repository and HTTP layers.
type Project struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	HTMLVersion   string    `json:"htmlVersion"`
	EditorVersion string    `json:"editorVersion"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
