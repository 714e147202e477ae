package booking

import (
	"context"
	"errors"
	"time"

	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/domain/booking"
	"github.com/sharpcut/booking-backend-go/internal/domain/catalog"
	"github.com/sharpcut/booking-backend-go/internal/domain/client"
	"github.com/sharpcut/booking-backend-go/internal/pkg/timeutil"
)

type bookingServiceImpl struct {
	tx                  booking.Transactor
	loc                 *time.Location
	clientRepo          client.ClientRepository
	serviceRepo         catalog.ServiceRepository
	appointmentRepo     booking.AppointmentRepository
	availabilityService availability.AvailabilityService
}

func NewBookingService(
	tx booking.Transactor,
	loc *time.Location,
	clientRepo client.ClientRepository,
	serviceRepo catalog.ServiceRepository,
	appointmentRepo booking.AppointmentRepository,
	availabilityService availability.AvailabilityService,
) booking.BookingService {
	return &bookingServiceImpl{
		tx:                  tx,
		loc:                 loc,
		clientRepo:          clientRepo,
		serviceRepo:         serviceRepo,
		appointmentRepo:     appointmentRepo,
		availabilityService: availabilityService,
	}
}

// Reserve implements booking.BookingService. The slot check before the
// transaction rejects stale client-side slot lists cheaply; the checks
// inside the transaction are the actual correctness boundary against
// concurrent writers.
func (s *bookingServiceImpl) Reserve(ctx context.Context, userID string, req booking.ReserveRequest) (booking.AppointmentResponse, error) {
	if err := req.Validate(); err != nil {
		return booking.AppointmentResponse{}, err
	}

	profile, err := s.resolveClient(ctx, userID)
	if err != nil {
		return booking.AppointmentResponse{}, err
	}

	start, err := timeutil.ParseLocalDateTime(req.Start, s.loc)
	if err != nil {
		return booking.AppointmentResponse{}, booking.ErrInvalidStart
	}
	date := timeutil.LocalDate(start, s.loc)

	if err := s.requireSlot(ctx, req.ServiceID, req.EmployeeID, date, start, ""); err != nil {
		return booking.AppointmentResponse{}, err
	}

	dayStart, dayEnd, err := timeutil.DayBounds(date, s.loc)
	if err != nil {
		return booking.AppointmentResponse{}, booking.ErrInvalidStart
	}

	var created booking.Appointment
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		count, err := s.appointmentRepo.CountActiveForClientBetween(txCtx, profile.ID, dayStart, dayEnd, "")
		if err != nil {
			return err
		}
		if count > 0 {
			return booking.ErrClientDailyLimit
		}

		service, err := s.serviceRepo.GetActiveByID(txCtx, req.ServiceID)
		if err != nil {
			return err
		}
		end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

		taken, err := s.appointmentRepo.HasPendingOverlap(txCtx, req.EmployeeID, start, end, "")
		if err != nil {
			return err
		}
		if taken {
			return booking.ErrSlotAlreadyTaken
		}

		created, err = s.appointmentRepo.Create(txCtx, booking.Appointment{
			ClientID:   profile.ID,
			EmployeeID: req.EmployeeID,
			ServiceID:  req.ServiceID,
			StartAt:    start,
			EndAt:      end,
			Status:     booking.StatusPending,
		})
		return err
	})
	if err != nil {
		return booking.AppointmentResponse{}, err
	}

	return booking.NewAppointmentResponse(created, s.loc), nil
}

// Cancel implements booking.BookingService.
func (s *bookingServiceImpl) Cancel(ctx context.Context, userID, appointmentID string) error {
	profile, err := s.resolveClient(ctx, userID)
	if err != nil {
		return err
	}

	appointment, err := s.appointmentRepo.GetByClient(ctx, appointmentID, profile.ID)
	if err != nil {
		return err
	}
	if appointment.Status != booking.StatusPending {
		return booking.ErrAppointmentNotCancelable
	}

	// The status guard doubles as a compare-and-set: a concurrent cancel or
	// staff transition makes this affect zero rows.
	affected, err := s.appointmentRepo.UpdateStatusIfPending(ctx, appointmentID, profile.ID, booking.StatusCancelled)
	if err != nil {
		return err
	}
	if affected == 0 {
		return booking.ErrAppointmentCancelFailed
	}
	return nil
}

// Reschedule implements booking.BookingService.
func (s *bookingServiceImpl) Reschedule(ctx context.Context, userID, appointmentID string, req booking.RescheduleRequest) (booking.AppointmentResponse, error) {
	if err := req.Validate(); err != nil {
		return booking.AppointmentResponse{}, err
	}

	profile, err := s.resolveClient(ctx, userID)
	if err != nil {
		return booking.AppointmentResponse{}, err
	}

	appointment, err := s.appointmentRepo.GetByClient(ctx, appointmentID, profile.ID)
	if err != nil {
		return booking.AppointmentResponse{}, err
	}
	if appointment.Status != booking.StatusPending {
		return booking.AppointmentResponse{}, booking.ErrAppointmentNotReschedulable
	}

	newStart, err := timeutil.ParseLocalDateTime(req.Start, s.loc)
	if err != nil {
		return booking.AppointmentResponse{}, booking.ErrInvalidStart
	}
	if newStart.Equal(appointment.StartAt) {
		// Same start: idempotent success.
		return booking.NewAppointmentResponse(appointment, s.loc), nil
	}
	date := timeutil.LocalDate(newStart, s.loc)

	// The appointment must not block itself out of its current interval.
	if err := s.requireSlot(ctx, appointment.ServiceID, appointment.EmployeeID, date, newStart, appointment.ID); err != nil {
		return booking.AppointmentResponse{}, err
	}

	dayStart, dayEnd, err := timeutil.DayBounds(date, s.loc)
	if err != nil {
		return booking.AppointmentResponse{}, booking.ErrInvalidStart
	}

	var newEnd time.Time
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		count, err := s.appointmentRepo.CountActiveForClientBetween(txCtx, profile.ID, dayStart, dayEnd, appointment.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return booking.ErrClientDailyLimit
		}

		service, err := s.serviceRepo.GetActiveByID(txCtx, appointment.ServiceID)
		if err != nil {
			return err
		}
		newEnd = newStart.Add(time.Duration(service.DurationMinutes) * time.Minute)

		taken, err := s.appointmentRepo.HasPendingOverlap(txCtx, appointment.EmployeeID, newStart, newEnd, appointment.ID)
		if err != nil {
			return err
		}
		if taken {
			return booking.ErrSlotAlreadyTaken
		}

		affected, err := s.appointmentRepo.UpdateTimesIfPending(txCtx, appointment.ID, profile.ID, newStart, newEnd)
		if err != nil {
			return err
		}
		if affected == 0 {
			return booking.ErrAppointmentRescheduleFailed
		}
		return nil
	})
	if err != nil {
		return booking.AppointmentResponse{}, err
	}

	appointment.StartAt = newStart
	appointment.EndAt = newEnd
	return booking.NewAppointmentResponse(appointment, s.loc), nil
}

// ListMine implements booking.BookingService.
func (s *bookingServiceImpl) ListMine(ctx context.Context, userID string) ([]booking.AppointmentResponse, error) {
	profile, err := s.resolveClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListByClient(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]booking.AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		responses = append(responses, booking.NewAppointmentResponse(appointment, s.loc))
	}
	return responses, nil
}

func (s *bookingServiceImpl) resolveClient(ctx context.Context, userID string) (client.Client, error) {
	profile, err := s.clientRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return client.Client{}, booking.ErrClientProfileNotFound
		}
		return client.Client{}, err
	}
	return profile, nil
}

// requireSlot recomputes the slot grid and demands the exact instant.
func (s *bookingServiceImpl) requireSlot(ctx context.Context, serviceID, employeeID, date string, start time.Time, excludeAppointmentID string) error {
	slots, err := s.availabilityService.GetSlots(ctx, availability.GetSlotsRequest{
		ServiceID:            serviceID,
		EmployeeID:           employeeID,
		Date:                 date,
		ExcludeAppointmentID: excludeAppointmentID,
	})
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if slot.StartAt.Equal(start) {
			return nil
		}
	}
	return booking.ErrSlotNotAvailable
}
