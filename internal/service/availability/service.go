package availability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/domain/booking"
	"github.com/sharpcut/booking-backend-go/internal/domain/catalog"
	"github.com/sharpcut/booking-backend-go/internal/domain/employee"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
	"github.com/sharpcut/booking-backend-go/internal/pkg/timeutil"
	"github.com/sharpcut/booking-backend-go/internal/repository/postgresql"
)

type availabilityServiceImpl struct {
	db              *database.DB
	loc             *time.Location
	horizonDays     int
	ruleRepo        availability.WeeklyRuleRepository
	overrideRepo    availability.DayOverrideRepository
	blockRepo       availability.BlockRepository
	appointmentRepo booking.AppointmentRepository
	serviceRepo     catalog.ServiceRepository
	employeeRepo    employee.EmployeeRepository
}

func NewAvailabilityService(
	db *database.DB,
	loc *time.Location,
	horizonDays int,
	ruleRepo availability.WeeklyRuleRepository,
	overrideRepo availability.DayOverrideRepository,
	blockRepo availability.BlockRepository,
	appointmentRepo booking.AppointmentRepository,
	serviceRepo catalog.ServiceRepository,
	employeeRepo employee.EmployeeRepository,
) availability.AvailabilityService {
	if horizonDays < 1 {
		horizonDays = availability.DefaultHorizonDays
	}
	return &availabilityServiceImpl{
		db:              db,
		loc:             loc,
		horizonDays:     horizonDays,
		ruleRepo:        ruleRepo,
		overrideRepo:    overrideRepo,
		blockRepo:       blockRepo,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
	}
}

// ListWeeklyRules implements availability.AvailabilityService.
func (s *availabilityServiceImpl) ListWeeklyRules(ctx context.Context, employeeID string) ([]availability.WeeklyRuleResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]availability.WeeklyRuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, availability.NewWeeklyRuleResponse(rule))
	}
	return responses, nil
}

// ReplaceWeeklyRules implements availability.AvailabilityService. The rule
// set is replaced wholesale and the availability horizon re-materialized in
// the same transaction, so readers never observe rules and blocks from
// different configurations.
func (s *availabilityServiceImpl) ReplaceWeeklyRules(ctx context.Context, employeeID string, req availability.ReplaceWeeklyRulesRequest) ([]availability.WeeklyRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	rules := make([]availability.WeeklyRule, 0, len(req.Rules))
	for _, input := range req.Rules {
		active := true
		if input.Active != nil {
			active = *input.Active
		}
		rules = append(rules, availability.WeeklyRule{
			DayOfWeek: input.DayOfWeek,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
			Active:    active,
		})
	}

	today := timeutil.LocalDate(time.Now(), s.loc)
	horizon := s.horizon(req.HorizonDays)

	var inserted []availability.WeeklyRule
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		inserted, err = s.ruleRepo.ReplaceForEmployee(txCtx, employeeID, rules)
		if err != nil {
			return err
		}
		if len(inserted) == 0 {
			// All rules removed: clear the horizon so stale blocks do not
			// keep offering slots.
			return s.clearRange(txCtx, employeeID, today, horizon)
		}
		return s.materializeRange(txCtx, employeeID, today, horizon)
	})
	if err != nil {
		return nil, err
	}

	responses := make([]availability.WeeklyRuleResponse, 0, len(inserted))
	for _, rule := range inserted {
		responses = append(responses, availability.NewWeeklyRuleResponse(rule))
	}
	return responses, nil
}

// ListOverrides implements availability.AvailabilityService.
func (s *availabilityServiceImpl) ListOverrides(ctx context.Context, employeeID, fromDate, toDate string) ([]availability.OverrideResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	if _, err := timeutil.ParseDate(fromDate); err != nil {
		return nil, availability.ErrInvalidDate
	}
	if _, err := timeutil.ParseDate(toDate); err != nil {
		return nil, availability.ErrInvalidDate
	}

	overrides, err := s.overrideRepo.ListByEmployeeBetween(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	responses := make([]availability.OverrideResponse, 0, len(overrides))
	for _, override := range overrides {
		responses = append(responses, availability.NewOverrideResponse(override))
	}
	return responses, nil
}

// CreateOverride implements availability.AvailabilityService.
func (s *availabilityServiceImpl) CreateOverride(ctx context.Context, employeeID string, req availability.CreateOverrideRequest) (availability.OverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return availability.OverrideResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return availability.OverrideResponse{}, err
	}

	today := timeutil.LocalDate(time.Now(), s.loc)
	from := timeutil.MaxDate(today, req.Date)
	horizon := s.horizon(req.HorizonDays)

	var saved availability.DayOverride
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		saved, err = s.overrideRepo.Upsert(txCtx, req.ToOverride(employeeID))
		if err != nil {
			return err
		}
		return s.materializeRange(txCtx, employeeID, from, horizon)
	})
	if err != nil {
		return availability.OverrideResponse{}, err
	}

	return availability.NewOverrideResponse(saved), nil
}

// DeleteOverride implements availability.AvailabilityService.
func (s *availabilityServiceImpl) DeleteOverride(ctx context.Context, employeeID, overrideID string) error {
	override, err := s.overrideRepo.GetByID(ctx, overrideID, employeeID)
	if err != nil {
		return err
	}

	today := timeutil.LocalDate(time.Now(), s.loc)
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.overrideRepo.Delete(txCtx, overrideID, employeeID); err != nil {
			return err
		}
		if override.Date < today {
			// Past dates are history; nothing to re-materialize.
			return nil
		}
		return s.materializeRange(txCtx, employeeID, override.Date, 1)
	})
}

// MaterializeEmployee implements availability.AvailabilityService.
func (s *availabilityServiceImpl) MaterializeEmployee(ctx context.Context, employeeID, fromDate string, days int) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.materializeRange(txCtx, employeeID, fromDate, days)
	})
}

// horizon picks the caller-supplied re-materialization window when present.
func (s *availabilityServiceImpl) horizon(override *int) int {
	if override != nil && *override >= 1 {
		return *override
	}
	return s.horizonDays
}

// materializeRange resolves weekly rules and overrides into blocks for
// [fromDate, fromDate+days-1]. The caller owns the transaction; every day in
// the range is replaced atomically with it. No-op for employees without
// weekly rules.
func (s *availabilityServiceImpl) materializeRange(ctx context.Context, employeeID, fromDate string, days int) error {
	if days < 1 {
		return nil
	}
	if _, err := timeutil.ParseDate(fromDate); err != nil {
		return availability.ErrInvalidDate
	}

	rules, err := s.ruleRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}

	toDate, err := timeutil.AddDays(fromDate, days-1)
	if err != nil {
		return err
	}
	overrides, err := s.overrideRepo.ListByEmployeeBetween(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return err
	}
	overridesByDate := make(map[string][]availability.DayOverride)
	for _, override := range overrides {
		overridesByDate[override.Date] = append(overridesByDate[override.Date], override)
	}

	date := fromDate
	for i := 0; i < days; i++ {
		if i > 0 {
			if date, err = timeutil.AddDays(date, 1); err != nil {
				return err
			}
		}

		dayOverrides := overridesByDate[date]
		if hasConflictingOverrides(dayOverrides) {
			slog.Warn("day has both off and custom overrides, custom wins",
				"employee_id", employeeID, "date", date)
		}

		dow, err := timeutil.DayOfWeek(date)
		if err != nil {
			return err
		}
		windows := resolveDay(rules, dayOverrides, dow)

		dayStart, dayEnd, err := timeutil.DayBounds(date, s.loc)
		if err != nil {
			return err
		}
		if err := s.blockRepo.DeleteBetween(ctx, employeeID, dayStart, dayEnd); err != nil {
			return err
		}

		blocks := make([]availability.Block, 0, len(windows))
		for _, w := range windows {
			startAt, err := timeutil.At(date, w.start, s.loc)
			if err != nil {
				return fmt.Errorf("resolve window start: %w", err)
			}
			endAt, err := timeutil.At(date, w.end, s.loc)
			if err != nil {
				return fmt.Errorf("resolve window end: %w", err)
			}
			if !endAt.After(startAt) {
				return availability.ErrInvalidTimeRange
			}
			blocks = append(blocks, availability.Block{
				EmployeeID: employeeID,
				StartAt:    startAt,
				EndAt:      endAt,
			})
		}
		if err := s.blockRepo.InsertMany(ctx, blocks); err != nil {
			return err
		}
	}
	return nil
}

// clearRange removes every block in [fromDate, fromDate+days-1].
func (s *availabilityServiceImpl) clearRange(ctx context.Context, employeeID, fromDate string, days int) error {
	toDate, err := timeutil.AddDays(fromDate, days)
	if err != nil {
		return err
	}
	from, _, err := timeutil.DayBounds(fromDate, s.loc)
	if err != nil {
		return err
	}
	to, _, err := timeutil.DayBounds(toDate, s.loc)
	if err != nil {
		return err
	}
	return s.blockRepo.DeleteBetween(ctx, employeeID, from, to)
}

// ensureDay lazily materializes one day. An existing materialization is
// treated as fresh; rule and override edits re-materialize explicitly.
func (s *availabilityServiceImpl) ensureDay(ctx context.Context, employeeID, date string) error {
	dayStart, dayEnd, err := timeutil.DayBounds(date, s.loc)
	if err != nil {
		return availability.ErrInvalidDate
	}

	exists, err := s.blockRepo.ExistsBetween(ctx, employeeID, dayStart, dayEnd)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.MaterializeEmployee(ctx, employeeID, date, 1)
}

// GetSlots implements availability.AvailabilityService.
func (s *availabilityServiceImpl) GetSlots(ctx context.Context, req availability.GetSlotsRequest) ([]availability.Slot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	service, err := s.serviceRepo.GetActiveByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	duration := time.Duration(service.DurationMinutes) * time.Minute

	if err := s.ensureDay(ctx, req.EmployeeID, req.Date); err != nil {
		return nil, err
	}

	dayStart, dayEnd, err := timeutil.DayBounds(req.Date, s.loc)
	if err != nil {
		return nil, availability.ErrInvalidDate
	}

	blocks, err := s.blockRepo.ListBetween(ctx, req.EmployeeID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, nil
	}

	busy, err := s.appointmentRepo.ListPendingIntervals(ctx, req.EmployeeID, dayStart, dayEnd, req.ExcludeAppointmentID)
	if err != nil {
		return nil, err
	}

	var slots []availability.Slot
	for _, block := range blocks {
		slots = append(slots, gridSlots(block.StartAt, block.EndAt, duration, availability.SlotStep, busy)...)
		if len(slots) >= availability.MaxSlots {
			slots = slots[:availability.MaxSlots]
			break
		}
	}
	return slots, nil
}
