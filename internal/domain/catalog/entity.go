package catalog

import "time"

// Service is a bookable barbering service. DurationMinutes drives the slot
// grid and is treated as immutable for existing appointments.
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	PriceCents      int64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
