package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Occurrence is one scheduled camp day within a registration. Upstream data
// encodes these either as a bare date string ("2024-06-10", sometimes a full
// timestamp) or as a structured object with time fields; both decode into
// this canonical form.
type Occurrence struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime,omitempty"`
	EndTime   string  `json:"endTime,omitempty"`
	Hours     float64 `json:"hours,omitempty"`
}

type OccurrenceList []Occurrence

// Schema documents the two accepted encodings so request validation lets
// both through to UnmarshalJSON.
func (o Occurrence) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		OneOf: []*huma.Schema{
			{Type: huma.TypeString, Description: "Bare camp date, e.g. 2024-06-10"},
			{
				Type:     huma.TypeObject,
				Required: []string{"date"},
				Properties: map[string]*huma.Schema{
					"date":      {Type: huma.TypeString},
					"startTime": {Type: huma.TypeString},
					"endTime":   {Type: huma.TypeString},
					"hours":     {Type: huma.TypeNumber},
				},
			},
		},
	}
}

func (o *Occurrence) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var date string
		if err := json.Unmarshal(data, &date); err != nil {
			return err
		}
		*o = Occurrence{Date: date}
		return nil
	}

	// Alias avoids recursing into this method.
	type occurrence Occurrence
	var structured occurrence
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	*o = Occurrence(structured)
	return nil
}

var occurrenceLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// Day resolves the occurrence to a calendar day, truncated to midnight UTC.
// Callers must treat an error as "invalid occurrence" and skip or mark the
// entry rather than fail the whole list.
func (o Occurrence) Day() (time.Time, error) {
	raw := strings.TrimSpace(o.Date)
	if raw == "" {
		return time.Time{}, fmt.Errorf("occurrence has no date")
	}
	for _, layout := range occurrenceLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable occurrence date %q", o.Date)
}
