package response

import (
	"errors"
	"net/http"

	"github.com/sharpcut/booking-backend-go/internal/domain/auth"
	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/domain/booking"
	"github.com/sharpcut/booking-backend-go/internal/domain/catalog"
	"github.com/sharpcut/booking-backend-go/internal/domain/employee"
	"github.com/sharpcut/booking-backend-go/internal/domain/user"
	"github.com/sharpcut/booking-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses with stable codes.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth / user errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "EMAIL_EXISTS", err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "USER_NOT_FOUND", err.Error())

	// Input errors
	case errors.Is(err, booking.ErrInvalidStart):
		BadRequest(w, "INVALID_START", err.Error())
	case errors.Is(err, availability.ErrInvalidDate):
		BadRequest(w, "INVALID_DATE", err.Error())
	case errors.Is(err, availability.ErrInvalidTimeRange):
		BadRequest(w, "INVALID_TIME_RANGE", err.Error())
	case errors.Is(err, availability.ErrInvalidRequestData):
		BadRequest(w, "INVALID_REQUEST_DATA", err.Error())

	// Not-found errors
	case errors.Is(err, booking.ErrClientProfileNotFound):
		NotFound(w, "CLIENT_PROFILE_NOT_FOUND", err.Error())
	case errors.Is(err, catalog.ErrServiceNotFound):
		NotFound(w, "SERVICE_NOT_FOUND", err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "EMPLOYEE_NOT_FOUND", err.Error())
	case errors.Is(err, booking.ErrAppointmentNotFound):
		NotFound(w, "APPOINTMENT_NOT_FOUND", err.Error())
	case errors.Is(err, availability.ErrOverrideNotFound):
		NotFound(w, "OVERRIDE_NOT_FOUND", err.Error())

	// Conflict errors: retryable by re-fetching availability
	case errors.Is(err, booking.ErrSlotNotAvailable):
		Conflict(w, "SLOT_NOT_AVAILABLE", err.Error())
	case errors.Is(err, booking.ErrSlotAlreadyTaken):
		Conflict(w, "SLOT_ALREADY_TAKEN", err.Error())
	case errors.Is(err, booking.ErrClientDailyLimit):
		Conflict(w, "CLIENT_DAILY_LIMIT", err.Error())
	case errors.Is(err, booking.ErrAppointmentNotCancelable):
		Conflict(w, "APPOINTMENT_NOT_CANCELABLE", err.Error())
	case errors.Is(err, booking.ErrAppointmentNotReschedulable):
		Conflict(w, "APPOINTMENT_NOT_RESCHEDULABLE", err.Error())
	case errors.Is(err, catalog.ErrServiceNameExists):
		Conflict(w, "SERVICE_NAME_EXISTS", err.Error())

	// Lost optimistic races: safe to retry from the top
	case errors.Is(err, booking.ErrAppointmentCancelFailed):
		Conflict(w, "APPOINTMENT_CANCEL_FAILED", err.Error())
	case errors.Is(err, booking.ErrAppointmentRescheduleFailed):
		Conflict(w, "APPOINTMENT_RESCHEDULE_FAILED", err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
