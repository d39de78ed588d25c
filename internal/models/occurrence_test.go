package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestOccurrenceUnmarshalBareString(t *testing.T) {
	var list OccurrenceList
	if err := json.Unmarshal([]byte(`["2024-06-10", "2024-06-11T09:00:00Z"]`), &list); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(list))
	}
	if list[0].Date != "2024-06-10" {
		t.Errorf("expected date '2024-06-10', got %q", list[0].Date)
	}
	if list[0].StartTime != "" {
		t.Errorf("bare date should have no start time, got %q", list[0].StartTime)
	}
}

func TestOccurrenceUnmarshalStructured(t *testing.T) {
	var occ Occurrence
	raw := `{"date":"2024-06-10","startTime":"09:00","endTime":"15:00","hours":6}`
	if err := json.Unmarshal([]byte(raw), &occ); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}

	if occ.Date != "2024-06-10" {
		t.Errorf("expected date '2024-06-10', got %q", occ.Date)
	}
	if occ.StartTime != "09:00" || occ.EndTime != "15:00" {
		t.Errorf("unexpected times: %q - %q", occ.StartTime, occ.EndTime)
	}
	if occ.Hours != 6 {
		t.Errorf("expected 6 hours, got %v", occ.Hours)
	}
}

func TestOccurrenceDay(t *testing.T) {
	cases := []struct {
		name string
		date string
		want time.Time
	}{
		{"PlainDate", "2024-06-10", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{"RFC3339", "2024-06-10T14:30:00Z", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{"NoZone", "2024-06-10T14:30:00", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{"SlashFormat", "06/10/2024", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day, err := Occurrence{Date: tc.date}.Day()
			if err != nil {
				t.Fatalf("Day returned error: %v", err)
			}
			if !day.Equal(tc.want) {
				t.Errorf("expected %v, got %v", tc.want, day)
			}
		})
	}
}

func TestOccurrenceDayInvalid(t *testing.T) {
	for _, date := range []string{"", "   ", "not-a-date", "2024-13-45"} {
		if _, err := (Occurrence{Date: date}.Day()); err == nil {
			t.Errorf("expected error for %q, got nil", date)
		}
	}
}
