package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sharpcut/booking-backend-go/internal/domain/booking"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
)

type appointmentRepositoryImpl struct {
	db *database.DB
}

func NewAppointmentRepository(db *database.DB) booking.AppointmentRepository {
	return &appointmentRepositoryImpl{db: db}
}

// Create implements booking.AppointmentRepository.
func (r *appointmentRepositoryImpl) Create(ctx context.Context, appointment booking.Appointment) (booking.Appointment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO appointments (
			id, client_id, employee_id, service_id, start_at, end_at, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	appointment.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		appointment.ID, appointment.ClientID, appointment.EmployeeID, appointment.ServiceID,
		appointment.StartAt, appointment.EndAt, string(appointment.Status),
	).Scan(&appointment.CreatedAt, &appointment.UpdatedAt)
	if err != nil {
		return booking.Appointment{}, fmt.Errorf("failed to insert appointment: %w", err)
	}
	return appointment, nil
}

// GetByClient implements booking.AppointmentRepository. Scoped by ownership:
// another client's appointment is indistinguishable from a missing one.
func (r *appointmentRepositoryImpl) GetByClient(ctx context.Context, id, clientID string) (booking.Appointment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, employee_id, service_id, start_at, end_at, status, created_at, updated_at
		FROM appointments
		WHERE id = $1 AND client_id = $2
	`

	appointment, err := scanAppointment(q.QueryRow(ctx, query, id, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Appointment{}, booking.ErrAppointmentNotFound
		}
		return booking.Appointment{}, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

// ListByClient implements booking.AppointmentRepository.
func (r *appointmentRepositoryImpl) ListByClient(ctx context.Context, clientID string) ([]booking.Appointment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, employee_id, service_id, start_at, end_at, status, created_at, updated_at
		FROM appointments
		WHERE client_id = $1
		ORDER BY start_at DESC
	`

	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []booking.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, rows.Err()
}

// ListPendingIntervals implements booking.AppointmentRepository.
func (r *appointmentRepositoryImpl) ListPendingIntervals(ctx context.Context, employeeID string, from, to time.Time, excludeID string) ([]booking.Interval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT start_at, end_at
		FROM appointments
		WHERE employee_id = $1
		  AND status = 'pending'
		  AND start_at < $3
		  AND end_at > $2
	`
	args := []interface{}{employeeID, from, to}
	if excludeID != "" {
		query += ` AND id <> $4`
		args = append(args, excludeID)
	}
	query += ` ORDER BY start_at`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending intervals: %w", err)
	}
	defer rows.Close()

	var intervals []booking.Interval
	for rows.Next() {
		var interval booking.Interval
		if err := rows.Scan(&interval.Start, &interval.End); err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	return intervals, rows.Err()
}

// HasPendingOverlap implements booking.AppointmentRepository. Half-open
// interval test: [start, end) intersects [a, b) iff a < end AND b > start.
func (r *appointmentRepositoryImpl) HasPendingOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE employee_id = $1
			  AND status = 'pending'
			  AND start_at < $3
			  AND end_at > $2
	`
	args := []interface{}{employeeID, start, end}
	if excludeID != "" {
		query += ` AND id <> $4`
		args = append(args, excludeID)
	}
	query += `)`

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending overlap: %w", err)
	}
	return exists, nil
}

// CountActiveForClientBetween implements booking.AppointmentRepository.
func (r *appointmentRepositoryImpl) CountActiveForClientBetween(ctx context.Context, clientID string, from, to time.Time, excludeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE client_id = $1
		  AND status <> 'cancelled'
		  AND start_at >= $2
		  AND start_at < $3
	`
	args := []interface{}{clientID, from, to}
	if excludeID != "" {
		query += ` AND id <> $4`
		args = append(args, excludeID)
	}

	var count int
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count client appointments: %w", err)
	}
	return count, nil
}

// UpdateStatusIfPending implements booking.AppointmentRepository.
func (r *appointmentRepositoryImpl) UpdateStatusIfPending(ctx context.Context, id, clientID string, to booking.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE appointments
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND client_id = $2 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query, id, clientID, string(to))
	if err != nil {
		return 0, fmt.Errorf("failed to update appointment status: %w", err)
	}
	return commandTag.RowsAffected(), nil
}

// UpdateTimesIfPending implements booking.AppointmentRepository.
func (r *appointmentRepositoryImpl) UpdateTimesIfPending(ctx context.Context, id, clientID string, start, end time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE appointments
		SET start_at = $3, end_at = $4, updated_at = NOW()
		WHERE id = $1 AND client_id = $2 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query, id, clientID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to update appointment times: %w", err)
	}
	return commandTag.RowsAffected(), nil
}

func scanAppointment(row pgx.Row) (booking.Appointment, error) {
	var appointment booking.Appointment
	var status string
	err := row.Scan(
		&appointment.ID,
		&appointment.ClientID,
		&appointment.EmployeeID,
		&appointment.ServiceID,
		&appointment.StartAt,
		&appointment.EndAt,
		&status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return booking.Appointment{}, err
	}
	appointment.Status = booking.Status(status)
	return appointment, nil
}
