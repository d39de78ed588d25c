package engine

import (
	"github.com/brightpine/camp-registry-api/internal/models"
)

// Page is one fixed-size slice of a filtered registration list.
type Page struct {
	Items      []models.Registration `json:"items"`
	TotalPages int                   `json:"totalPages"`
}

// Paginate slices registrations into fixed-size pages. Pages are numbered
// from 1. Callers are responsible for clamping page into [1, TotalPages];
// a page past the end simply yields no items.
func Paginate(registrations []models.Registration, page, pageSize int) Page {
	// Items is always a non-nil slice so empty pages serialize as [].
	if pageSize <= 0 {
		return Page{Items: []models.Registration{}}
	}

	totalPages := (len(registrations) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start < 0 || start >= len(registrations) {
		return Page{Items: []models.Registration{}, TotalPages: totalPages}
	}

	end := start + pageSize
	if end > len(registrations) {
		end = len(registrations)
	}

	return Page{
		Items:      registrations[start:end],
		TotalPages: totalPages,
	}
}
