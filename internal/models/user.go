package models

import (
	"gorm.io/gorm"
)

// User is a staff account mirrored from the external identity provider.
type User struct {
	gorm.Model
	SubjectID string `gorm:"uniqueIndex"`
	Username  string
	Email     string
	Avatar    string
}
