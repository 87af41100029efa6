// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// LikeStatusOutput describes the like state of a post for one viewer.
type LikeStatusOutput struct {
	Liked      bool // Whether the viewer has liked the post; always false for anonymous viewers.
	LikesCount int
}

// LikeUsecase defines the interface for post-like business operations.
type LikeUsecase interface {
	// ToggleLike flips the actor's like on a post and returns the new state.
	// The post's maintained like counter is updated in the same transaction.
	ToggleLike(ctx context.Context, actor *Actor, postID uuid.UUID) (*LikeStatusOutput, error)

	// GetLikeStatus returns the like state of a post. actor may be nil for
	// anonymous viewers, who always see Liked as false.
	GetLikeStatus(ctx context.Context, actor *Actor, postID uuid.UUID) (*LikeStatusOutput, error)
}
