package models

import (
	"gorm.io/gorm"
)

// RegistrationHistory is an append-only snapshot written on every create,
// update and cancellation.
type RegistrationHistory struct {
	gorm.Model
	RegistrationPK     uint   `json:"registration_pk"`
	RegistrationID     string `json:"registrationId" gorm:"index"`
	ChangedBy          string `json:"changedBy"`
	RegistrationFields `gorm:"embedded"`
}
