package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
	"github.com/sharpcut/booking-backend-go/internal/pkg/timeutil"
)

type dayOverrideRepositoryImpl struct {
	db *database.DB
}

func NewDayOverrideRepository(db *database.DB) availability.DayOverrideRepository {
	return &dayOverrideRepositoryImpl{db: db}
}

// Upsert implements availability.DayOverrideRepository. The unique key
// (employee_id, date, type) makes repeated submissions idempotent.
func (r *dayOverrideRepositoryImpl) Upsert(ctx context.Context, override availability.DayOverride) (availability.DayOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO day_overrides (
			id, employee_id, date, type, start_time, end_time, note, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NOW(), NOW()
		)
		ON CONFLICT (employee_id, date, type) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.NewString(), override.EmployeeID, override.Date, string(override.Type),
		override.StartTime, override.EndTime, override.Note,
	).Scan(&override.ID, &override.CreatedAt, &override.UpdatedAt)
	if err != nil {
		return availability.DayOverride{}, fmt.Errorf("failed to upsert day override: %w", err)
	}
	return override, nil
}

// ListByEmployeeBetween implements availability.DayOverrideRepository.
func (r *dayOverrideRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID, fromDate, toDate string) ([]availability.DayOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, type, COALESCE(start_time, ''), COALESCE(end_time, ''), note, created_at, updated_at
		FROM day_overrides
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, type
	`

	rows, err := q.Query(ctx, query, employeeID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list day overrides: %w", err)
	}
	defer rows.Close()

	var overrides []availability.DayOverride
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}
	return overrides, rows.Err()
}

// GetByID implements availability.DayOverrideRepository.
func (r *dayOverrideRepositoryImpl) GetByID(ctx context.Context, id, employeeID string) (availability.DayOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, type, COALESCE(start_time, ''), COALESCE(end_time, ''), note, created_at, updated_at
		FROM day_overrides
		WHERE id = $1 AND employee_id = $2
	`

	override, err := scanOverride(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return availability.DayOverride{}, availability.ErrOverrideNotFound
		}
		return availability.DayOverride{}, fmt.Errorf("failed to get day override: %w", err)
	}
	return override, nil
}

// Delete implements availability.DayOverrideRepository.
func (r *dayOverrideRepositoryImpl) Delete(ctx context.Context, id, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM day_overrides WHERE id = $1 AND employee_id = $2`, id, employeeID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return availability.ErrOverrideNotFound
	}
	return nil
}

func scanOverride(row pgx.Row) (availability.DayOverride, error) {
	var override availability.DayOverride
	var date time.Time
	var typ string
	err := row.Scan(
		&override.ID,
		&override.EmployeeID,
		&date,
		&typ,
		&override.StartTime,
		&override.EndTime,
		&override.Note,
		&override.CreatedAt,
		&override.UpdatedAt,
	)
	if err != nil {
		return availability.DayOverride{}, err
	}
	override.Date = date.Format(timeutil.DateLayout)
	override.Type = availability.OverrideType(typ)
	return override, nil
}
