package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'USER'"`

	Bio                string `gorm:"type:text"`
	Location           string `gorm:"type:varchar(100)"`
	AvatarURL          string `gorm:"type:varchar(512)"`
	AvatarFilename     string `gorm:"type:varchar(255)"`
	TwitterURL         string `gorm:"type:varchar(512)"`
	GithubURL          string `gorm:"type:varchar(512)"`
	LinkedinURL        string `gorm:"type:varchar(512)"`
	WebsiteURL         string `gorm:"type:varchar(512)"`
	ProfileCompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Posts []PostModel `gorm:"foreignKey:AuthorID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
