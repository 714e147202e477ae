package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sharpcut/booking-backend-go/internal/domain/booking"
	"github.com/sharpcut/booking-backend-go/internal/handler/http/middleware"
	"github.com/sharpcut/booking-backend-go/internal/handler/http/response"
)

type BookingHandler interface {
	Reserve(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Reschedule(w http.ResponseWriter, r *http.Request)
}

type bookingHandlerImpl struct {
	bookingService booking.BookingService
}

func NewBookingHandler(bookingService booking.BookingService) BookingHandler {
	return &bookingHandlerImpl{
		bookingService: bookingService,
	}
}

func (h *bookingHandlerImpl) Reserve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req booking.ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	result, err := h.bookingService.Reserve(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Appointment reserved successfully", result)
}

func (h *bookingHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	result, err := h.bookingService.ListMine(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bookingHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")

	if err := h.bookingService.Cancel(r.Context(), userID, appointmentID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Appointment cancelled successfully", nil)
}

func (h *bookingHandlerImpl) Reschedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")

	var req booking.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	result, err := h.bookingService.Reschedule(r.Context(), userID, appointmentID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Appointment rescheduled successfully", result)
}
