// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"safepost/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CategoryInput defines the data required to create or rename a category.
type CategoryInput struct {
	Name string
}

// CreateTagsInput defines the data required to create tags. Names are treated
// as a set: existing tags are returned as-is, missing ones are created.
type CreateTagsInput struct {
	Names []string
}

// CategoryUsecase defines the interface for category business operations.
type CategoryUsecase interface {
	// ListCategories returns all categories with their post counts.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// CreateCategory adds a new category. Names are unique case-insensitively.
	CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error)

	// UpdateCategory renames a category.
	UpdateCategory(ctx context.Context, id uuid.UUID, input *CategoryInput) (*entity.Category, error)

	// DeleteCategory removes a category. Refused while posts still use it.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// TagUsecase defines the interface for tag business operations.
type TagUsecase interface {
	// ListTags returns all tags with their post counts.
	ListTags(ctx context.Context) ([]*entity.Tag, error)

	// CreateTags ensures a tag exists for each given name and returns the
	// full resulting set.
	CreateTags(ctx context.Context, input *CreateTagsInput) ([]entity.Tag, error)

	// DeleteTag removes a tag. Refused while posts still use it.
	DeleteTag(ctx context.Context, id uuid.UUID) error
}
