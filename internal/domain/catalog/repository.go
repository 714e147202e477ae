package catalog

import "context"

type ServiceRepository interface {
	Create(ctx context.Context, service Service) (Service, error)
	GetByID(ctx context.Context, id string) (Service, error)
	// GetActiveByID returns ErrServiceNotFound for missing or inactive rows.
	GetActiveByID(ctx context.Context, id string) (Service, error)
	List(ctx context.Context, activeOnly bool) ([]Service, error)
	Update(ctx context.Context, req UpdateServiceRequest) (Service, error)
}
