// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"safepost/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPostNotFound is a domain-specific error returned when a post is not found.
var ErrPostNotFound = errors.New("post not found")

// PostFilter narrows published-post listings and searches. Nil fields are
// ignored.
type PostFilter struct {
	CategoryID *uuid.UUID
	TagID      *uuid.UUID

	// Query is a case-insensitive substring match against title and content.
	// Empty means no text filtering.
	Query string
}

// PostRepository defines the standard operations for post persistence.
type PostRepository interface {
	// FindByID retrieves a single post with its author, category and tags preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)

	// FindPublished lists published posts matching the filter, newest first.
	FindPublished(ctx context.Context, filter PostFilter) ([]*entity.Post, error)

	// FindDraftsByAuthor lists the given author's draft posts, newest first.
	FindDraftsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error)

	// Create persists a new post together with its tag associations.
	Create(ctx context.Context, post *entity.Post) error

	// Update modifies an existing post, replacing its tag associations.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes a post and its tag/like associations.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViewCount bumps the view counter without a full entity round trip.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// SetLikesCount stores the maintained like counter for a post.
	SetLikesCount(ctx context.Context, id uuid.UUID, count int) error
}
