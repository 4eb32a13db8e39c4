package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationCode is a short-lived one-time login code sent to an email.
// A row is consumable only while ExpiresAt is in the future and Used is false.
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index;not null" json:"email"`
	Code      string    `gorm:"not null" json:"code"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// MigrateVerificationCodes migrates the table
func MigrateVerificationCodes(db *gorm.DB) error {
	return db.AutoMigrate(&VerificationCode{})
}
