// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// Category groups posts into a single, mandatory rubric. Names are unique
// case-insensitively.
type Category struct {
	ID   uuid.UUID
	Name string

	// PostCount is derived when listing categories; it is not a stored column.
	PostCount int
}

// Tag is a free-form label attached to posts (many-to-many). Tag management
// is admin-gated in stricter deployments.
type Tag struct {
	ID   uuid.UUID
	Name string

	// PostCount is derived when listing tags; it is not a stored column.
	PostCount int
}
