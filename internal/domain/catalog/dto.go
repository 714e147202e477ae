package catalog

import "github.com/sharpcut/booking-backend-go/internal/pkg/validator"

type CreateServiceRequest struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
}

func (r *CreateServiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.DurationMinutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_minutes",
			Message: "duration_minutes must be a positive number",
		})
	}
	if r.PriceCents < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "price_cents",
			Message: "price_cents must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateServiceRequest struct {
	ID         string `json:"-"`
	Name       *string `json:"name"`
	PriceCents *int64  `json:"price_cents"`
	Active     *bool   `json:"active"`
}

func (r *UpdateServiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.PriceCents != nil && *r.PriceCents < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "price_cents",
			Message: "price_cents must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
	Active          bool   `json:"active"`
}

func NewServiceResponse(s Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
		Active:          s.Active,
	}
}
