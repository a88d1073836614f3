package models

// Quest is a user-defined project/category carrying a display color.
// Exactly one quest per user is the default.
type Quest struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"` // hex, e.g. "#7c3aed"
	IsDefault bool   `json:"is_default"`
}

// Tag labels task-like entities across all three collections.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
