// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"safepost/internal/domain/entity"
	"safepost/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreatePostInput defines the data required to create a post.
type CreatePostInput struct {
	Title      string
	Content    string
	Status     entity.PostStatus
	CategoryID uuid.UUID
	TagIDs     []uuid.UUID

	// Optional cover image metadata from a prior upload.
	CoverImageURL         string
	CoverImageFilename    string
	CoverImageSize        int64
	CoverImageContentType string
}

// UpdatePostInput defines the data required to update a post. All fields are
// full replacements; the handler validates presence.
type UpdatePostInput struct {
	Title      string
	Content    string
	Status     entity.PostStatus
	CategoryID uuid.UUID
	TagIDs     []uuid.UUID

	CoverImageURL         string
	CoverImageFilename    string
	CoverImageSize        int64
	CoverImageContentType string
}

// ListPostsInput narrows the published-post listing.
type ListPostsInput struct {
	CategoryID *uuid.UUID
	TagID      *uuid.UUID
	Query      string
}

// PostUsecase defines the interface for post-related business operations.
type PostUsecase interface {
	// GetPost returns one post. Drafts are only visible to their author or an
	// admin; published reads increment the view counter.
	GetPost(ctx context.Context, id uuid.UUID, actor *Actor) (*entity.Post, error)

	// ListPublished lists published posts matching the filter, newest first.
	ListPublished(ctx context.Context, input *ListPostsInput) ([]*entity.Post, error)

	// ListDrafts lists the actor's own draft posts, newest first.
	ListDrafts(ctx context.Context, actor *Actor) ([]*entity.Post, error)

	// CreatePost creates a post authored by the actor.
	CreatePost(ctx context.Context, actor *Actor, input *CreatePostInput) (*entity.Post, error)

	// UpdatePost replaces a post's content. Only the author or an admin may
	// update.
	UpdatePost(ctx context.Context, actor *Actor, id uuid.UUID, input *UpdatePostInput) (*entity.Post, error)

	// DeletePost removes a post. Only the author or an admin may delete.
	DeletePost(ctx context.Context, actor *Actor, id uuid.UUID) error
}

// Filter converts the listing input into the repository filter.
func (in *ListPostsInput) Filter() repository.PostFilter {
	if in == nil {
		return repository.PostFilter{}
	}

	return repository.PostFilter{
		CategoryID: in.CategoryID,
		TagID:      in.TagID,
		Query:      in.Query,
	}
}
