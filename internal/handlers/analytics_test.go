package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/brightpine/camp-registry-api/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestHandleDashboardSummary(t *testing.T) {
	db := setupTestDB(t)
	handler := NewAnalyticsHandler(db)

	upcoming := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	recentCancel := time.Now().UTC().AddDate(0, 0, -3)

	enrolled := seedRegistration(t, db, "REG-1", "alice", models.StatusEnrolled, upcoming)
	enrolled.TotalCost = floatPtr(500)
	enrolled.AmountPaid = floatPtr(250)
	db.Save(&enrolled)

	cancelled := seedRegistration(t, db, "REG-2", "bob", models.StatusCancelled, "2024-06-10")
	cancelled.TotalCost = floatPtr(200)
	cancelled.CancellationDate = &recentCancel
	db.Save(&cancelled)

	resp, err := handler.HandleDashboardSummary(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("HandleDashboardSummary returned error: %v", err)
	}

	summary := resp.Body
	if summary.TotalEnrolled != 1 {
		t.Errorf("expected 1 enrolled, got %d", summary.TotalEnrolled)
	}
	if summary.NetRevenue != 300 {
		t.Errorf("expected net revenue 300, got %v", summary.NetRevenue)
	}
	if summary.OutstandingBalance != 250 {
		t.Errorf("expected outstanding 250, got %v", summary.OutstandingBalance)
	}
	if summary.UpcomingCampsCount != 1 {
		t.Errorf("expected 1 upcoming camp, got %d", summary.UpcomingCampsCount)
	}
	if summary.RecentCancellations != 1 {
		t.Errorf("expected 1 recent cancellation, got %d", summary.RecentCancellations)
	}
}

func TestHandleRevenue(t *testing.T) {
	db := setupTestDB(t)
	handler := NewAnalyticsHandler(db)

	reg := seedRegistration(t, db, "REG-1", "alice", models.StatusEnrolled, "2024-06-10")
	reg.EnrollmentDate = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	reg.CampType = "Day Camp"
	reg.TotalCost = floatPtr(400)
	reg.AmountPaid = floatPtr(150)
	db.Save(&reg)

	// Outside the requested range, must not count.
	outside := seedRegistration(t, db, "REG-2", "bob", models.StatusEnrolled, "2024-07-10")
	outside.EnrollmentDate = time.Date(2024, 7, 10, 10, 0, 0, 0, time.UTC)
	outside.TotalCost = floatPtr(999)
	db.Save(&outside)

	input := &RevenueInput{}
	input.StartDate = "2024-06-01"
	input.EndDate = "2024-06-30"

	resp, err := handler.HandleRevenue(context.Background(), input)
	if err != nil {
		t.Fatalf("HandleRevenue returned error: %v", err)
	}

	if resp.Body.TotalRevenue != 400 {
		t.Errorf("expected total revenue 400, got %v", resp.Body.TotalRevenue)
	}
	if resp.Body.OutstandingBalance != 250 {
		t.Errorf("expected outstanding 250, got %v", resp.Body.OutstandingBalance)
	}
	if resp.Body.RevenueByCampType["Day Camp"] != 400 {
		t.Errorf("expected Day Camp revenue 400, got %v", resp.Body.RevenueByCampType)
	}
	if resp.Body.RegistrationCount != 1 {
		t.Errorf("expected 1 registration in range, got %d", resp.Body.RegistrationCount)
	}
}

func TestHandleCancellations(t *testing.T) {
	db := setupTestDB(t)
	handler := NewAnalyticsHandler(db)

	cancelDate := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	reg := seedRegistration(t, db, "REG-1", "alice", models.StatusCancelled, "2024-06-10")
	reg.CancellationDate = &cancelDate
	reg.TotalCost = floatPtr(300)
	reg.AmountPaid = floatPtr(100)
	db.Save(&reg)

	input := &CancellationsInput{}
	input.StartDate = "2024-06-01"
	input.EndDate = "2024-06-30"

	resp, err := handler.HandleCancellations(context.Background(), input)
	if err != nil {
		t.Fatalf("HandleCancellations returned error: %v", err)
	}

	if resp.Body.TotalCancellations != 1 {
		t.Errorf("expected 1 cancellation, got %d", resp.Body.TotalCancellations)
	}
	if resp.Body.LostRevenue != 200 {
		t.Errorf("expected lost revenue 200, got %v", resp.Body.LostRevenue)
	}
	if resp.Body.CancellationsByDate["2024-06-05"] != 1 {
		t.Errorf("expected one cancellation on 2024-06-05, got %v", resp.Body.CancellationsByDate)
	}
}

func TestHandleDailyCapacity(t *testing.T) {
	db := setupTestDB(t)
	handler := NewAnalyticsHandler(db)

	seedRegistration(t, db, "REG-1", "alice", models.StatusEnrolled, "2024-06-10", "2024-06-11")
	seedRegistration(t, db, "REG-2", "bob", models.StatusEnrolled, "2024-06-10")
	// Cancelled registrations don't occupy capacity.
	seedRegistration(t, db, "REG-3", "mia", models.StatusCancelled, "2024-06-10")

	input := &DailyCapacityInput{}
	input.StartDate = "2024-06-10"
	input.EndDate = "2024-06-11"

	resp, err := handler.HandleDailyCapacity(context.Background(), input)
	if err != nil {
		t.Fatalf("HandleDailyCapacity returned error: %v", err)
	}

	data := resp.Body.CapacityData
	if len(data) != 2 {
		t.Fatalf("expected 2 days, got %d", len(data))
	}
	if data[0].Count != 2 {
		t.Errorf("expected 2 enrollments on first day, got %d", data[0].Count)
	}
	if data[1].Count != 1 {
		t.Errorf("expected 1 enrollment on second day, got %d", data[1].Count)
	}

	t.Run("InvertedRange", func(t *testing.T) {
		input := &DailyCapacityInput{}
		input.StartDate = "2024-06-11"
		input.EndDate = "2024-06-10"
		if _, err := handler.HandleDailyCapacity(context.Background(), input); err == nil {
			t.Fatal("expected error for inverted range, got nil")
		}
	})
}
