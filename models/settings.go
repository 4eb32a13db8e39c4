package models

import (
	"time"

	"gorm.io/gorm"
)

// Setting represents a key-value configuration pair
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MigrateSettings migrates the table
func MigrateSettings(db *gorm.DB) error {
	return db.AutoMigrate(&Setting{})
}
