package model

import (
	"time"

	"github.com/google/uuid"
)

// TagModel mirrors the 'tags' table.
type TagModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name string    `gorm:"type:varchar(100);unique;not null"`

	CreatedAt time.Time

	// PostCount is filled by listing queries; gorm never writes it.
	PostCount int `gorm:"->;-:migration"`
}

// TableName explicitly sets the table name for GORM.
func (TagModel) TableName() string {
	return "tags"
}
