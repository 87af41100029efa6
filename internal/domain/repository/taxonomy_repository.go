// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"safepost/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for taxonomy persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrTagNotFound is returned when a tag (or one of a requested set) is not found.
	ErrTagNotFound = errors.New("tag not found")
)

// CategoryRepository defines the standard operations for category persistence.
type CategoryRepository interface {
	// FindAll lists all categories with their derived post counts.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// ExistsByName reports whether a category with the name exists (case-insensitive).
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update renames an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. Callers must check for attached posts first.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountPosts returns the number of posts attached to the category.
	CountPosts(ctx context.Context, id uuid.UUID) (int, error)
}

// TagRepository defines the standard operations for tag persistence.
type TagRepository interface {
	// FindAll lists all tags with their derived post counts.
	FindAll(ctx context.Context) ([]*entity.Tag, error)

	// FindByIDs retrieves the tags for all given IDs. Returns ErrTagNotFound
	// when any requested ID does not exist.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tag, error)

	// FindByNames retrieves the tags whose names are in the given set.
	FindByNames(ctx context.Context, names []string) ([]entity.Tag, error)

	// Create persists the given new tags.
	Create(ctx context.Context, tags []entity.Tag) ([]entity.Tag, error)

	// FindByID retrieves a single tag by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error)

	// Delete removes a tag. Callers must check for attached posts first.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountPosts returns the number of posts attached to the tag.
	CountPosts(ctx context.Context, id uuid.UUID) (int, error)
}
