package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey is a personal key a staff member issues for automations against
// the registration API. A nil ExpiresAt means the key never expires.
type APIKey struct {
	gorm.Model
	UserID     uint       `json:"user_id"`
	User       User       `json:"user"`
	Key        string     `json:"key" gorm:"uniqueIndex"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
