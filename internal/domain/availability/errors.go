package availability

import "errors"

var (
	ErrInvalidDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrOverrideNotFound = errors.New("day override not found")

	// Request Data Errors
	ErrInvalidRequestData = errors.New("invalid request data")
)
