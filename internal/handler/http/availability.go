package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/handler/http/response"
	"github.com/sharpcut/booking-backend-go/internal/pkg/timeutil"
)

type AvailabilityHandler interface {
	ListWeeklyRules(w http.ResponseWriter, r *http.Request)
	ReplaceWeeklyRules(w http.ResponseWriter, r *http.Request)

	ListOverrides(w http.ResponseWriter, r *http.Request)
	CreateOverride(w http.ResponseWriter, r *http.Request)
	DeleteOverride(w http.ResponseWriter, r *http.Request)

	GetSlots(w http.ResponseWriter, r *http.Request)
}

type availabilityHandlerImpl struct {
	availabilityService availability.AvailabilityService
	loc                 *time.Location
}

func NewAvailabilityHandler(availabilityService availability.AvailabilityService, loc *time.Location) AvailabilityHandler {
	return &availabilityHandlerImpl{
		availabilityService: availabilityService,
		loc:                 loc,
	}
}

// ==================== WEEKLY RULES ====================

func (h *availabilityHandlerImpl) ListWeeklyRules(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.availabilityService.ListWeeklyRules(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *availabilityHandlerImpl) ReplaceWeeklyRules(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var req availability.ReplaceWeeklyRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	result, err := h.availabilityService.ReplaceWeeklyRules(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly rules replaced successfully", result)
}

// ==================== DAY OVERRIDES ====================

func (h *availabilityHandlerImpl) ListOverrides(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" {
		from = timeutil.LocalDate(time.Now(), h.loc)
	}
	if to == "" {
		var err error
		if to, err = timeutil.AddDays(from, availability.DefaultHorizonDays-1); err != nil {
			response.HandleError(w, availability.ErrInvalidDate)
			return
		}
	}

	result, err := h.availabilityService.ListOverrides(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *availabilityHandlerImpl) CreateOverride(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var req availability.CreateOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	result, err := h.availabilityService.CreateOverride(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Day override saved successfully", result)
}

func (h *availabilityHandlerImpl) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	overrideID := chi.URLParam(r, "overrideID")

	if err := h.availabilityService.DeleteOverride(r.Context(), employeeID, overrideID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day override deleted successfully", nil)
}

// ==================== SLOTS ====================

func (h *availabilityHandlerImpl) GetSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := availability.GetSlotsRequest{
		ServiceID:            query.Get("service_id"),
		EmployeeID:           query.Get("employee_id"),
		Date:                 query.Get("date"),
		ExcludeAppointmentID: query.Get("exclude_appointment_id"),
	}

	slots, err := h.availabilityService.GetSlots(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]availability.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, availability.NewSlotResponse(slot, h.loc))
	}
	response.Success(w, result)
}
