package handlers

import (
	"context"
	"time"

	"github.com/brightpine/camp-registry-api/internal/engine"
	"github.com/brightpine/camp-registry-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

// AnalyticsHandler serves the dashboard reports. The DB query selects the
// relevant rows; all aggregation happens in the engine package.
type AnalyticsHandler struct {
	db *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: db}
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// resolveRange parses the optional bounds and fills defaults: end defaults
// to now, start defaults to daysBack before end.
func resolveRange(startDate, endDate string, daysBack int) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	if endDate != "" {
		parsed, err := parseDate(endDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	start := end.AddDate(0, 0, -daysBack)
	if startDate != "" {
		parsed, err := parseDate(startDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}

	return start, end, nil
}

type RevenueInput struct {
	StartDate string `query:"start_date" doc:"Range start (YYYY-MM-DD)"`
	EndDate   string `query:"end_date" doc:"Range end (YYYY-MM-DD)"`
}

type RevenueOutput struct {
	Body struct {
		engine.RevenueReport
		DateRange DateRange `json:"dateRange"`
	}
}

func (h *AnalyticsHandler) HandleRevenue(ctx context.Context, input *RevenueInput) (*RevenueOutput, error) {
	start, end, err := resolveRange(input.StartDate, input.EndDate, 30)
	if err != nil {
		return nil, err
	}

	var registrations []models.Registration
	dbErr := h.db.
		Where("status = ?", models.StatusEnrolled).
		Where("enrollment_date >= ? AND enrollment_date <= ?", start, end).
		Find(&registrations).Error
	if dbErr != nil {
		return nil, huma.Error500InternalServerError("Failed to load registrations: " + dbErr.Error())
	}

	res := &RevenueOutput{}
	res.Body.RevenueReport = engine.ComputeRevenue(registrations)
	res.Body.DateRange = DateRange{Start: start.Format(time.RFC3339), End: end.Format(time.RFC3339)}
	return res, nil
}

type DailyCapacityInput struct {
	StartDate string `query:"start_date" doc:"Range start (YYYY-MM-DD)"`
	EndDate   string `query:"end_date" doc:"Range end (YYYY-MM-DD)"`
}

type DailyCapacityOutput struct {
	Body struct {
		DateRange    DateRange            `json:"dateRange"`
		CapacityData []engine.DayCapacity `json:"capacityData"`
	}
}

// HandleDailyCapacity returns the per-day enrollment load for the calendar
// view, defaulting to the next 60 days.
func (h *AnalyticsHandler) HandleDailyCapacity(ctx context.Context, input *DailyCapacityInput) (*DailyCapacityOutput, error) {
	start := time.Now().UTC()
	if input.StartDate != "" {
		parsed, err := parseDate(input.StartDate)
		if err != nil {
			return nil, err
		}
		start = parsed
	}

	end := start.AddDate(0, 0, 60)
	if input.EndDate != "" {
		parsed, err := parseDate(input.EndDate)
		if err != nil {
			return nil, err
		}
		end = parsed
	}
	if end.Before(start) {
		return nil, huma.Error400BadRequest("end_date is before start_date")
	}

	var registrations []models.Registration
	if err := h.db.Where("status = ?", models.StatusEnrolled).Find(&registrations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load registrations: " + err.Error())
	}

	res := &DailyCapacityOutput{}
	res.Body.DateRange = DateRange{Start: start.Format(time.RFC3339), End: end.Format(time.RFC3339)}
	res.Body.CapacityData = engine.ComputeDailyCapacity(registrations, start, end)
	return res, nil
}

type CancellationsInput struct {
	StartDate string `query:"start_date" doc:"Range start (YYYY-MM-DD)"`
	EndDate   string `query:"end_date" doc:"Range end (YYYY-MM-DD)"`
}

type CancellationsOutput struct {
	Body struct {
		engine.CancellationReport
		DateRange DateRange `json:"dateRange"`
	}
}

func (h *AnalyticsHandler) HandleCancellations(ctx context.Context, input *CancellationsInput) (*CancellationsOutput, error) {
	start, end, err := resolveRange(input.StartDate, input.EndDate, 30)
	if err != nil {
		return nil, err
	}

	var registrations []models.Registration
	dbErr := h.db.
		Where("status = ?", models.StatusCancelled).
		Where("cancellation_date >= ? AND cancellation_date <= ?", start, end).
		Find(&registrations).Error
	if dbErr != nil {
		return nil, huma.Error500InternalServerError("Failed to load registrations: " + dbErr.Error())
	}

	res := &CancellationsOutput{}
	res.Body.CancellationReport = engine.ComputeCancellations(registrations)
	res.Body.DateRange = DateRange{Start: start.Format(time.RFC3339), End: end.Format(time.RFC3339)}
	return res, nil
}

type DashboardSummaryOutput struct {
	Body engine.Summary
}

func (h *AnalyticsHandler) HandleDashboardSummary(ctx context.Context, input *struct{}) (*DashboardSummaryOutput, error) {
	var registrations []models.Registration
	if err := h.db.Find(&registrations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load registrations: " + err.Error())
	}

	return &DashboardSummaryOutput{Body: engine.ComputeSummary(registrations, time.Now().UTC())}, nil
}
