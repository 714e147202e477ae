package availability

import "context"

type AvailabilityService interface {
	// Weekly rules
	ListWeeklyRules(ctx context.Context, employeeID string) ([]WeeklyRuleResponse, error)
	ReplaceWeeklyRules(ctx context.Context, employeeID string, req ReplaceWeeklyRulesRequest) ([]WeeklyRuleResponse, error)

	// Day overrides
	ListOverrides(ctx context.Context, employeeID, fromDate, toDate string) ([]OverrideResponse, error)
	CreateOverride(ctx context.Context, employeeID string, req CreateOverrideRequest) (OverrideResponse, error)
	DeleteOverride(ctx context.Context, employeeID, overrideID string) error

	// Materialization. MaterializeEmployee resolves weekly rules and
	// overrides into concrete blocks for [fromDate, fromDate+days-1] in a
	// single transaction. No-op when the employee has no weekly rules.
	MaterializeEmployee(ctx context.Context, employeeID, fromDate string, days int) error

	// GetSlots returns the bookable start times for a service/employee/date,
	// lazily materializing the day first. excludeAppointmentID removes one
	// appointment from the occupancy check (reschedule self-exclusion).
	GetSlots(ctx context.Context, req GetSlotsRequest) ([]Slot, error)
}
