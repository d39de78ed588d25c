// Package engine holds the pure query and aggregation functions shared by
// the registration and analytics handlers: calendar-day matching, status
// partitioning, free-text search, revenue aggregation and pagination. All
// functions are stateless and never mutate their inputs.
package engine

import (
	"log"
	"time"

	"github.com/brightpine/camp-registry-api/internal/models"
)

// DailyRate is the flat per-registration rate used for day-scoped revenue
// figures. It is intentionally separate from a registration's TotalCost,
// which is the contracted amount reported by range analytics.
const DailyRate = 100.0

// MatchDate returns the registrations with at least one occurrence on the
// same calendar day as target. Time of day is ignored. Occurrences that do
// not parse are logged and treated as non-matching; a bad entry never fails
// the whole list.
func MatchDate(registrations []models.Registration, target time.Time) []models.Registration {
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)

	var matched []models.Registration
	for _, reg := range registrations {
		for _, occ := range reg.CampDates {
			day, err := occ.Day()
			if err != nil {
				log.Printf("registration %s: skipping occurrence: %v", reg.RegistrationID, err)
				continue
			}
			if day.Equal(targetDay) {
				matched = append(matched, reg)
				break
			}
		}
	}
	return matched
}

// DailyStats are the day-scoped figures shown for one calendar day,
// computed over the registrations MatchDate selected for that day.
type DailyStats struct {
	EnrolledCount  int     `json:"enrolledCount"`
	CancelledCount int     `json:"cancelledCount"`
	RevenueGained  float64 `json:"revenueGained"`
	RevenueLost    float64 `json:"revenueLost"`
}

func ComputeDailyStats(registrations []models.Registration) DailyStats {
	var stats DailyStats
	for _, reg := range registrations {
		if reg.Cancelled() {
			stats.CancelledCount++
		} else {
			stats.EnrolledCount++
		}
	}
	stats.RevenueGained = float64(stats.EnrolledCount) * DailyRate
	stats.RevenueLost = float64(stats.CancelledCount) * DailyRate
	return stats
}
