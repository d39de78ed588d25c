package engine

import (
	"testing"
	"time"

	"github.com/brightpine/camp-registry-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRegistration(id, childName string, status models.RegistrationStatus, dates ...string) models.Registration {
	occurrences := make(models.OccurrenceList, len(dates))
	for i, d := range dates {
		occurrences[i] = models.Occurrence{Date: d}
	}
	return models.Registration{
		RegistrationID: id,
		RegistrationFields: models.RegistrationFields{
			Status:      status,
			ChildName:   childName,
			ParentName:  "Parent " + childName,
			ParentEmail: childName + "@example.com",
			CampDates:   occurrences,
		},
	}
}

func TestMatchDate(t *testing.T) {
	target := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	regs := []models.Registration{
		makeRegistration("REG-1", "alice", models.StatusEnrolled, "2024-06-10"),
		makeRegistration("REG-2", "bob", models.StatusEnrolled, "2024-06-11", "2024-06-12"),
		makeRegistration("REG-3", "carol", models.StatusCancelled, "2024-06-09", "2024-06-10"),
	}

	matched := MatchDate(regs, target)

	require.Len(t, matched, 2)
	assert.Equal(t, "REG-1", matched[0].RegistrationID)
	assert.Equal(t, "REG-3", matched[1].RegistrationID)
}

func TestMatchDateIgnoresTimeOfDay(t *testing.T) {
	target := time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)

	regs := []models.Registration{
		makeRegistration("REG-1", "alice", models.StatusEnrolled, "2024-06-10T09:00:00Z"),
	}

	assert.Len(t, MatchDate(regs, target), 1)
}

func TestMatchDateStructuredOccurrences(t *testing.T) {
	target := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	reg := models.Registration{
		RegistrationID: "REG-1",
		RegistrationFields: models.RegistrationFields{
			Status: models.StatusEnrolled,
			CampDates: models.OccurrenceList{
				{Date: "2024-06-10", StartTime: "09:00", EndTime: "15:00", Hours: 6},
			},
		},
	}

	assert.Len(t, MatchDate([]models.Registration{reg}, target), 1)
}

func TestMatchDateSkipsMalformedOccurrences(t *testing.T) {
	target := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	regs := []models.Registration{
		makeRegistration("REG-1", "alice", models.StatusEnrolled, "not-a-date"),
		makeRegistration("REG-2", "bob", models.StatusEnrolled, "garbage", "2024-06-10"),
	}

	var matched []models.Registration
	require.NotPanics(t, func() {
		matched = MatchDate(regs, target)
	})

	// The bad entry is non-matching; a later valid entry still matches.
	require.Len(t, matched, 1)
	assert.Equal(t, "REG-2", matched[0].RegistrationID)
}

func TestMatchDateNoOccurrences(t *testing.T) {
	regs := []models.Registration{
		makeRegistration("REG-1", "alice", models.StatusEnrolled),
	}

	assert.Empty(t, MatchDate(regs, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
}

func TestComputeDailyStats(t *testing.T) {
	regs := []models.Registration{
		makeRegistration("REG-1", "alice", models.StatusEnrolled, "2024-06-10"),
		makeRegistration("REG-2", "bob", models.StatusEnrolled, "2024-06-10"),
		makeRegistration("REG-3", "carol", models.StatusCancelled, "2024-06-10"),
	}

	stats := ComputeDailyStats(regs)

	assert.Equal(t, 2, stats.EnrolledCount)
	assert.Equal(t, 1, stats.CancelledCount)
	assert.Equal(t, 200.0, stats.RevenueGained)
	assert.Equal(t, 100.0, stats.RevenueLost)
}

func TestComputeDailyStatsEmpty(t *testing.T) {
	stats := ComputeDailyStats(nil)

	assert.Zero(t, stats.EnrolledCount)
	assert.Zero(t, stats.CancelledCount)
	assert.Zero(t, stats.RevenueGained)
	assert.Zero(t, stats.RevenueLost)
}
