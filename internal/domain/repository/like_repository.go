// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"safepost/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrLikeNotFound is returned when no like exists for the (post, user) pair.
var ErrLikeNotFound = errors.New("like not found")

// LikeRepository defines the standard operations for post-like persistence.
type LikeRepository interface {
	// FindByPostAndUser retrieves the like a user placed on a post.
	FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*entity.PostLike, error)

	// ExistsByPostAndUser reports whether the user has liked the post.
	ExistsByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (bool, error)

	// Create persists a new like.
	Create(ctx context.Context, like *entity.PostLike) error

	// Delete removes an existing like.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByPost returns the number of likes a post has received.
	CountByPost(ctx context.Context, postID uuid.UUID) (int, error)
}
