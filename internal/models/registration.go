package models

import (
	"time"

	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	StatusEnrolled  RegistrationStatus = "enrolled"
	StatusCancelled RegistrationStatus = "cancelled"
)

type StringList []string

// RegistrationFields is everything staff can set on a registration. It is
// embedded in both Registration and RegistrationHistory so history rows are
// exact snapshots.
type RegistrationFields struct {
	Status           RegistrationStatus `json:"status"`
	EnrollmentDate   time.Time          `json:"enrollmentDate"`
	CancellationDate *time.Time         `json:"cancellationDate"`
	ChildName        string             `json:"childName"`
	Children         StringList         `json:"children,omitempty" gorm:"serializer:json"`
	ChildAge         *int               `json:"childAge"`
	ParentName       string             `json:"parentName"`
	ParentEmail      string             `json:"parentEmail" gorm:"index"`
	ParentPhone      string             `json:"parentPhone"`
	Employer         string             `json:"employer"`
	CampDates        OccurrenceList     `json:"campDates" gorm:"serializer:json"`
	CampType         string             `json:"campType"`
	Location         string             `json:"location"`
	TotalCost        *float64           `json:"totalCost"`
	AmountPaid       *float64           `json:"amountPaid"`
}

type Registration struct {
	gorm.Model
	// RegistrationID is the opaque business identifier exposed to clients,
	// distinct from the numeric primary key.
	RegistrationID     string `json:"registrationId" gorm:"uniqueIndex"`
	RegistrationFields `gorm:"embedded"`
	ManualEntry        bool   `json:"manualEntry"`
	CreatedBy          string `json:"createdBy"`
}

func (r *Registration) Cancelled() bool {
	return r.Status == StatusCancelled
}
