package model

import (
	"time"

	"github.com/google/uuid"
)

// PostLikeModel mirrors the 'post_likes' table. The (post_id, user_id) pair
// carries a unique index so a user can like a post at most once.
type PostLikeModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	PostID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_post_user"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_post_user"`

	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PostLikeModel) TableName() string {
	return "post_likes"
}
