package booking

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Appointment occupies [StartAt, EndAt) exclusively for its employee while
// Status is pending. The reservation engine creates pending appointments and
// transitions them to cancelled; confirmed/completed are set by staff flows.
type Appointment struct {
	ID         string
	ClientID   string
	EmployeeID string
	ServiceID  string
	StartAt    time.Time
	EndAt      time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Interval is an occupied half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}
