package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	// ListActiveWithRules returns ids of active employees that have at least
	// one weekly rule; used by the horizon re-materialization job.
	ListActiveWithRules(ctx context.Context) ([]string, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
}
