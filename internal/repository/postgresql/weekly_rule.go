package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
)

type weeklyRuleRepositoryImpl struct {
	db *database.DB
}

func NewWeeklyRuleRepository(db *database.DB) availability.WeeklyRuleRepository {
	return &weeklyRuleRepositoryImpl{db: db}
}

// ListByEmployee implements availability.WeeklyRuleRepository.
func (r *weeklyRuleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]availability.WeeklyRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, day_of_week, start_time, end_time, active, created_at, updated_at
		FROM weekly_rules
		WHERE employee_id = $1
		ORDER BY day_of_week, start_time
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly rules: %w", err)
	}
	defer rows.Close()

	var rules []availability.WeeklyRule
	for rows.Next() {
		var rule availability.WeeklyRule
		if err := rows.Scan(
			&rule.ID,
			&rule.EmployeeID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.Active,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// ReplaceForEmployee implements availability.WeeklyRuleRepository.
func (r *weeklyRuleRepositoryImpl) ReplaceForEmployee(ctx context.Context, employeeID string, rules []availability.WeeklyRule) ([]availability.WeeklyRule, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM weekly_rules WHERE employee_id = $1`, employeeID); err != nil {
		return nil, fmt.Errorf("failed to clear weekly rules: %w", err)
	}

	query := `
		INSERT INTO weekly_rules (
			id, employee_id, day_of_week, start_time, end_time, active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	inserted := make([]availability.WeeklyRule, 0, len(rules))
	for _, rule := range rules {
		rule.ID = uuid.NewString()
		rule.EmployeeID = employeeID
		err := q.QueryRow(ctx, query,
			rule.ID, rule.EmployeeID, rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.Active,
		).Scan(&rule.CreatedAt, &rule.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert weekly rule: %w", err)
		}
		inserted = append(inserted, rule)
	}
	return inserted, nil
}
