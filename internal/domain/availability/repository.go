package availability

import (
	"context"
	"time"
)

type WeeklyRuleRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]WeeklyRule, error)
	// ReplaceForEmployee deletes every rule of the employee and inserts the
	// given set. Transaction-aware via the context-carried tx.
	ReplaceForEmployee(ctx context.Context, employeeID string, rules []WeeklyRule) ([]WeeklyRule, error)
}

type DayOverrideRepository interface {
	// Upsert inserts the override or, when one already exists for the same
	// (employee, date, type), updates its times and note in place.
	Upsert(ctx context.Context, override DayOverride) (DayOverride, error)
	ListByEmployeeBetween(ctx context.Context, employeeID, fromDate, toDate string) ([]DayOverride, error)
	GetByID(ctx context.Context, id, employeeID string) (DayOverride, error)
	Delete(ctx context.Context, id, employeeID string) error
}

type BlockRepository interface {
	DeleteBetween(ctx context.Context, employeeID string, from, to time.Time) error
	InsertMany(ctx context.Context, blocks []Block) error
	ExistsBetween(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
	ListBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Block, error)
}
