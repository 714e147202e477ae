package booking

import "errors"

var (
	ErrClientProfileNotFound = errors.New("client profile not found")
	ErrInvalidStart          = errors.New("invalid start time, use YYYY-MM-DD HH:mm")
	ErrSlotNotAvailable      = errors.New("requested slot is not available")
	ErrSlotAlreadyTaken      = errors.New("slot was taken by a concurrent reservation")
	ErrClientDailyLimit      = errors.New("client already has an appointment on this date")

	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentNotCancelable    = errors.New("appointment can no longer be cancelled")
	ErrAppointmentNotReschedulable = errors.New("appointment can no longer be rescheduled")

	// Lost optimistic race on the final conditional update. Retryable from
	// the top: re-fetch slots and re-attempt.
	ErrAppointmentCancelFailed     = errors.New("appointment cancel failed, please retry")
	ErrAppointmentRescheduleFailed = errors.New("appointment reschedule failed, please retry")
)
