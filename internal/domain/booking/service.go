package booking

import "context"

type BookingService interface {
	// Reserve validates the requested start against freshly computed slots,
	// then re-checks every invariant inside a transaction before inserting
	// the pending appointment.
	Reserve(ctx context.Context, userID string, req ReserveRequest) (AppointmentResponse, error)

	// Cancel flips a pending appointment owned by the caller to cancelled.
	Cancel(ctx context.Context, userID, appointmentID string) error

	// Reschedule moves a pending appointment owned by the caller to a new
	// start, excluding the appointment itself from occupancy checks.
	Reschedule(ctx context.Context, userID, appointmentID string, req RescheduleRequest) (AppointmentResponse, error)

	ListMine(ctx context.Context, userID string) ([]AppointmentResponse, error)
}
