package engine

import (
	"strings"

	"github.com/brightpine/camp-registry-api/internal/models"
)

// Partition splits registrations into active and cancelled subsets. Every
// input record lands in exactly one of the two.
func Partition(registrations []models.Registration) (active, cancelled []models.Registration) {
	for _, reg := range registrations {
		if reg.Cancelled() {
			cancelled = append(cancelled, reg)
		} else {
			active = append(active, reg)
		}
	}
	return active, cancelled
}

// Search narrows registrations by a free-text term matched case-insensitively
// against child names, parent name, parent email and the registration
// identifier. An empty or whitespace-only term returns the input unchanged.
func Search(registrations []models.Registration, term string) []models.Registration {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return registrations
	}

	var matched []models.Registration
	for _, reg := range registrations {
		if matchesTerm(reg, needle) {
			matched = append(matched, reg)
		}
	}
	return matched
}

func matchesTerm(reg models.Registration, needle string) bool {
	fields := []string{
		reg.ChildName,
		reg.ParentName,
		reg.ParentEmail,
		reg.RegistrationID,
	}
	fields = append(fields, reg.Children...)

	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FilterStatus keeps only registrations with the given status.
func FilterStatus(registrations []models.Registration, status models.RegistrationStatus) []models.Registration {
	var matched []models.Registration
	for _, reg := range registrations {
		if reg.Status == status {
			matched = append(matched, reg)
		}
	}
	return matched
}
