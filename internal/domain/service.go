package domain

import "time"

// Service represents a bookable photography package from the catalog.
// Catalog entries are managed by admin tooling and read-only to the core.
type Service struct {
	ID              string
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	SortOrder       int
	CreatedAt       time.Time
}
