// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publication state of a post.
type PostStatus string

const (
	// PostStatusDraft indicates a post visible only to its author.
	PostStatusDraft PostStatus = "DRAFT"
	// PostStatusPublished indicates a post visible to everyone.
	PostStatusPublished PostStatus = "PUBLISHED"
)

// String returns the string representation of the PostStatus.
func (s PostStatus) String() string {
	return string(s)
}

// IsValid checks if the PostStatus is a valid value.
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished:
		return true
	default:
		return false
	}
}

// Post is an authored article. Mutations are ownership-gated: only the author
// or an admin may update or delete a post.
type Post struct {
	ID          uuid.UUID
	Title       string
	Content     string
	Status      PostStatus
	ReadingTime int // Estimated minutes to read, derived from the content.
	ViewCount   int
	LikesCount  int

	// Cover image metadata, populated from the file upload flow.
	CoverImageURL         string
	CoverImageFilename    string
	CoverImageSize        int64
	CoverImageContentType string

	AuthorID   uuid.UUID
	Author     *User // Preloaded on reads; nil when only the ID is known.
	CategoryID uuid.UUID
	Category   *Category
	Tags       []Tag

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostLike records that one user liked one post. The (post, user) pair is unique.
type PostLike struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}
