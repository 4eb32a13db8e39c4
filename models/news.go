package models

import (
	"time"

	"gorm.io/gorm"
)

// News represents a published news article. AuthorID is a weak reference:
// a news item survives even when its author row is missing.
type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content" gorm:"type:text"`
	Category    string    `json:"category" gorm:"default:General"`
	ImageURL    string    `json:"image_url" gorm:"type:text"`
	AuthorID    *uint     `json:"author_id"`
	Author      *User     `gorm:"foreignKey:AuthorID" json:"-"`
	IsAdminPost bool      `json:"is_admin_post" gorm:"default:false"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName keeps the table singular ("news" is uncountable)
func (News) TableName() string {
	return "news"
}

// MigrateNews migrates the table
func MigrateNews(db *gorm.DB) error {
	return db.AutoMigrate(&News{})
}
