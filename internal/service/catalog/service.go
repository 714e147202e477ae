package catalog

import (
	"context"

	"github.com/sharpcut/booking-backend-go/internal/domain/catalog"
)

type catalogServiceImpl struct {
	serviceRepo catalog.ServiceRepository
}

func NewCatalogService(serviceRepo catalog.ServiceRepository) catalog.CatalogService {
	return &catalogServiceImpl{serviceRepo: serviceRepo}
}

// CreateService implements catalog.CatalogService.
func (s *catalogServiceImpl) CreateService(ctx context.Context, req catalog.CreateServiceRequest) (catalog.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.ServiceResponse{}, err
	}

	created, err := s.serviceRepo.Create(ctx, catalog.Service{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
	})
	if err != nil {
		return catalog.ServiceResponse{}, err
	}
	return catalog.NewServiceResponse(created), nil
}

// GetService implements catalog.CatalogService.
func (s *catalogServiceImpl) GetService(ctx context.Context, id string) (catalog.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return catalog.ServiceResponse{}, err
	}
	return catalog.NewServiceResponse(service), nil
}

// ListServices implements catalog.CatalogService.
func (s *catalogServiceImpl) ListServices(ctx context.Context, activeOnly bool) ([]catalog.ServiceResponse, error) {
	services, err := s.serviceRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]catalog.ServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, catalog.NewServiceResponse(service))
	}
	return responses, nil
}

// UpdateService implements catalog.CatalogService.
func (s *catalogServiceImpl) UpdateService(ctx context.Context, req catalog.UpdateServiceRequest) (catalog.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.ServiceResponse{}, err
	}

	updated, err := s.serviceRepo.Update(ctx, req)
	if err != nil {
		return catalog.ServiceResponse{}, err
	}
	return catalog.NewServiceResponse(updated), nil
}
