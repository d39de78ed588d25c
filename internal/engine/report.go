package engine

import (
	"log"
	"time"

	"github.com/brightpine/camp-registry-api/internal/models"
)

const dateKeyLayout = "2006-01-02"

// RevenueReport summarises contracted revenue for a set of enrolled
// registrations, grouped by enrollment date and camp type. These figures
// come from the stored cost fields, not from the day-rate model.
type RevenueReport struct {
	TotalRevenue       float64            `json:"totalRevenue"`
	TotalPaid          float64            `json:"totalPaid"`
	OutstandingBalance float64            `json:"outstandingBalance"`
	RevenueByDate      map[string]float64 `json:"revenueByDate"`
	RevenueByCampType  map[string]float64 `json:"revenueByCampType"`
	RegistrationCount  int                `json:"registrationCount"`
}

func ComputeRevenue(registrations []models.Registration) RevenueReport {
	report := RevenueReport{
		RevenueByDate:     map[string]float64{},
		RevenueByCampType: map[string]float64{},
		RegistrationCount: len(registrations),
	}

	for _, reg := range registrations {
		cost := amountOf(reg.TotalCost)
		paid := amountOf(reg.AmountPaid)

		report.TotalRevenue += cost
		report.TotalPaid += paid

		if !reg.EnrollmentDate.IsZero() {
			report.RevenueByDate[reg.EnrollmentDate.Format(dateKeyLayout)] += cost
		}

		campType := reg.CampType
		if campType == "" {
			campType = "Unknown"
		}
		report.RevenueByCampType[campType] += cost
	}

	report.OutstandingBalance = report.TotalRevenue - report.TotalPaid
	return report
}

// DayCapacity is the enrollment load for one calendar day.
type DayCapacity struct {
	Date          string          `json:"date"`
	Count         int             `json:"count"`
	Registrations []CapacityEntry `json:"registrations"`
}

type CapacityEntry struct {
	ChildName  string `json:"childName"`
	ParentName string `json:"parentName"`
	CampType   string `json:"campType"`
}

// ComputeDailyCapacity buckets enrolled registrations by occurrence day over
// [start, end], producing one entry per day including empty ones. Both
// bounds are truncated to calendar days.
func ComputeDailyCapacity(registrations []models.Registration, start, end time.Time) []DayCapacity {
	startDay := truncateDay(start)
	endDay := truncateDay(end)

	counts := map[string]int{}
	entries := map[string][]CapacityEntry{}

	for _, reg := range registrations {
		for _, occ := range reg.CampDates {
			day, err := occ.Day()
			if err != nil {
				log.Printf("registration %s: skipping occurrence: %v", reg.RegistrationID, err)
				continue
			}
			if day.Before(startDay) || day.After(endDay) {
				continue
			}
			key := day.Format(dateKeyLayout)
			counts[key]++
			entries[key] = append(entries[key], CapacityEntry{
				ChildName:  reg.ChildName,
				ParentName: reg.ParentName,
				CampType:   reg.CampType,
			})
		}
	}

	var capacity []DayCapacity
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateKeyLayout)
		dayEntries := entries[key]
		if dayEntries == nil {
			// Empty days still serialize with an empty array.
			dayEntries = []CapacityEntry{}
		}
		capacity = append(capacity, DayCapacity{
			Date:          key,
			Count:         counts[key],
			Registrations: dayEntries,
		})
	}
	return capacity
}

// CancellationReport summarises a set of cancelled registrations. Lost
// revenue is the contracted cost minus whatever was already paid.
type CancellationReport struct {
	TotalCancellations  int            `json:"totalCancellations"`
	LostRevenue         float64        `json:"lostRevenue"`
	CancellationsByDate map[string]int `json:"cancellationsByDate"`
}

func ComputeCancellations(registrations []models.Registration) CancellationReport {
	report := CancellationReport{
		TotalCancellations:  len(registrations),
		CancellationsByDate: map[string]int{},
	}

	for _, reg := range registrations {
		if reg.CancellationDate != nil {
			report.CancellationsByDate[reg.CancellationDate.Format(dateKeyLayout)]++
		}
		report.LostRevenue += amountOf(reg.TotalCost) - amountOf(reg.AmountPaid)
	}
	return report
}

// Summary feeds the dashboard KPI cards.
type Summary struct {
	TotalEnrolled         int     `json:"totalEnrolled"`
	TotalEnrolledRevenue  float64 `json:"totalEnrolledRevenue"`
	TotalCancelledRevenue float64 `json:"totalCancelledRevenue"`
	NetRevenue            float64 `json:"netRevenue"`
	TotalPaid             float64 `json:"totalPaid"`
	OutstandingBalance    float64 `json:"outstandingBalance"`
	UpcomingCampsCount    int     `json:"upcomingCampsCount"`
	RecentCancellations   int     `json:"recentCancellations"`
}

// ComputeSummary derives the dashboard aggregate over the full registration
// set. Upcoming camps look 7 days ahead of now, recent cancellations 30
// days back.
func ComputeSummary(registrations []models.Registration, now time.Time) Summary {
	enrolled, cancelled := Partition(registrations)

	var summary Summary
	summary.TotalEnrolled = len(enrolled)

	for _, reg := range enrolled {
		summary.TotalEnrolledRevenue += amountOf(reg.TotalCost)
		summary.TotalPaid += amountOf(reg.AmountPaid)
	}
	for _, reg := range cancelled {
		summary.TotalCancelledRevenue += amountOf(reg.TotalCost)
	}
	summary.NetRevenue = summary.TotalEnrolledRevenue - summary.TotalCancelledRevenue
	summary.OutstandingBalance = summary.TotalEnrolledRevenue - summary.TotalPaid

	today := truncateDay(now)
	weekOut := today.AddDate(0, 0, 7)
	for _, reg := range enrolled {
		for _, occ := range reg.CampDates {
			day, err := occ.Day()
			if err != nil {
				continue
			}
			if !day.Before(today) && !day.After(weekOut) {
				summary.UpcomingCampsCount++
				break
			}
		}
	}

	monthAgo := now.AddDate(0, 0, -30)
	for _, reg := range cancelled {
		if reg.CancellationDate != nil && reg.CancellationDate.After(monthAgo) {
			summary.RecentCancellations++
		}
	}

	return summary
}

func amountOf(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
