package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/domain/employee"
	"github.com/sharpcut/booking-backend-go/internal/pkg/timeutil"
)

// AvailabilityJobs keeps the materialized booking horizon rolling: once per
// local business day, every active employee with weekly rules gets their
// blocks rebuilt for today through today+horizon-1.
type AvailabilityJobs struct {
	employeeRepo        employee.EmployeeRepository
	availabilityService availability.AvailabilityService
	loc                 *time.Location
	horizonDays         int
}

func NewAvailabilityJobs(
	employeeRepo employee.EmployeeRepository,
	availabilityService availability.AvailabilityService,
	loc *time.Location,
	horizonDays int,
) *AvailabilityJobs {
	return &AvailabilityJobs{
		employeeRepo:        employeeRepo,
		availabilityService: availabilityService,
		loc:                 loc,
		horizonDays:         horizonDays,
	}
}

func (j *AvailabilityJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("extend_booking_horizon", 1*time.Hour, j.ExtendBookingHorizon)
}

// ExtendBookingHorizon re-materializes the full horizon for every employee.
// The job ticks hourly but only fires in the first hour of the business day,
// so each calendar day is extended exactly once.
func (j *AvailabilityJobs) ExtendBookingHorizon(ctx context.Context) error {
	if time.Now().In(j.loc).Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting booking horizon extension job")

	employeeIDs, err := j.employeeRepo.ListActiveWithRules(ctx)
	if err != nil {
		return err
	}

	today := timeutil.LocalDate(time.Now(), j.loc)
	materialized := 0
	for _, id := range employeeIDs {
		if err := j.availabilityService.MaterializeEmployee(ctx, id, today, j.horizonDays); err != nil {
			slog.Error("Cron: Failed to materialize employee horizon",
				"employee_id", id,
				"error", err)
			continue
		}
		materialized++
	}

	slog.Info("Cron: Booking horizon extended", "employee_count", materialized)
	return nil
}
