package booking

import (
	"context"
	"time"
)

// Transactor runs fn inside a single database transaction; every repository
// call made with the context handed to fn joins it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment Appointment) (Appointment, error)
	GetByClient(ctx context.Context, id, clientID string) (Appointment, error)
	ListByClient(ctx context.Context, clientID string) ([]Appointment, error)

	// ListPendingIntervals returns the occupied [start, end) intervals of
	// pending appointments for an employee within a day window, optionally
	// excluding one appointment id.
	ListPendingIntervals(ctx context.Context, employeeID string, from, to time.Time, excludeID string) ([]Interval, error)

	// HasPendingOverlap reports whether any pending appointment of the
	// employee intersects [start, end), optionally excluding one id.
	HasPendingOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)

	// CountActiveForClientBetween counts the client's non-cancelled
	// appointments starting inside [from, to), optionally excluding one id.
	CountActiveForClientBetween(ctx context.Context, clientID string, from, to time.Time, excludeID string) (int, error)

	// UpdateStatusIfPending is a compare-and-set: the update only applies
	// while status is still pending, and the affected row count tells the
	// caller whether it won the race.
	UpdateStatusIfPending(ctx context.Context, id, clientID string, to Status) (int64, error)

	// UpdateTimesIfPending moves a pending appointment to a new interval
	// under the same compare-and-set guard.
	UpdateTimesIfPending(ctx context.Context, id, clientID string, start, end time.Time) (int64, error)
}
