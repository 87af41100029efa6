package model

import (
	"time"

	"github.com/google/uuid"
)

// PostModel mirrors the 'posts' table. Tags attach through the 'post_tags'
// join table; likes live in 'post_likes' with a maintained counter here.
type PostModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Content     string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	ReadingTime int       `gorm:"not null;default:1"`
	ViewCount   int       `gorm:"not null;default:0"`
	LikesCount  int       `gorm:"not null;default:0"`

	CoverImageURL         string `gorm:"type:varchar(512)"`
	CoverImageFilename    string `gorm:"type:varchar(255)"`
	CoverImageSize        int64
	CoverImageContentType string `gorm:"type:varchar(100)"`

	AuthorID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Author     *UserModel     `gorm:"foreignKey:AuthorID"`
	CategoryID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Category   *CategoryModel `gorm:"foreignKey:CategoryID"`
	Tags       []TagModel     `gorm:"many2many:post_tags"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}
