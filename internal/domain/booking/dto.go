package booking

import (
	"time"

	"github.com/sharpcut/booking-backend-go/internal/pkg/timeutil"
	"github.com/sharpcut/booking-backend-go/internal/pkg/validator"
)

type ReserveRequest struct {
	EmployeeID string `json:"employee_id"`
	ServiceID  string `json:"service_id"`
	Start      string `json:"start"` // YYYY-MM-DD HH:mm, business time zone
}

func (r *ReserveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.ServiceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "service_id",
			Message: "service_id is required",
		})
	}
	if validator.IsEmpty(r.Start) {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RescheduleRequest struct {
	Start string `json:"start"` // YYYY-MM-DD HH:mm, business time zone
}

func (r *RescheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Start) {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AppointmentResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	ServiceID  string `json:"service_id"`
	Status     string `json:"status"`
	Start      string `json:"start"`
	End        string `json:"end"`
	CreatedAt  string `json:"created_at"`
}

func NewAppointmentResponse(a Appointment, loc *time.Location) AppointmentResponse {
	return AppointmentResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		ServiceID:  a.ServiceID,
		Status:     string(a.Status),
		Start:      a.StartAt.In(loc).Format(timeutil.InputLayout),
		End:        a.EndAt.In(loc).Format(timeutil.InputLayout),
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}
