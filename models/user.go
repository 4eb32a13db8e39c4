package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a registered user
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Name        string         `json:"name"`
	IsVerified  bool           `json:"is_verified" gorm:"default:false"`
	IsAdmin     bool           `json:"is_admin" gorm:"default:false"`
	AvatarURL   string         `json:"avatar_url" gorm:"type:text"`
	Location    string         `json:"location"`
	Preferences datatypes.JSON `json:"preferences"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// MigrateUsers migrates the table
func MigrateUsers(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}
