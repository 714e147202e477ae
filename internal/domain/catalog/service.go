package catalog

import "context"

type CatalogService interface {
	CreateService(ctx context.Context, req CreateServiceRequest) (ServiceResponse, error)
	GetService(ctx context.Context, id string) (ServiceResponse, error)
	ListServices(ctx context.Context, activeOnly bool) ([]ServiceResponse, error)
	UpdateService(ctx context.Context, req UpdateServiceRequest) (ServiceResponse, error)
}
