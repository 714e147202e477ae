package timeutil

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
	DateTimeLayout  = "2006-01-02 15:04:05"
	// InputLayout is what clients send as a reservation start.
	InputLayout = "2006-01-02 15:04"
)

// LocalDate returns the calendar date of t as observed in loc.
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// LocalDateTime returns a naive local timestamp string for t in loc.
func LocalDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateTimeLayout)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseTimeOfDay parses an HH:mm string and returns minutes from midnight.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// At returns the instant at which the wall clock in loc reads hhmm on date.
func At(date, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeOfDayLayout, date+" "+hhmm, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid local time %q %q: %w", date, hhmm, err)
	}
	return t, nil
}

// ParseLocalDateTime parses a "YYYY-MM-DD HH:mm" string as a wall time in loc.
func ParseLocalDateTime(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(InputLayout, s, loc)
}

// DayBounds returns the half-open instant window [start, end) covering the
// local calendar date in loc.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return start, start.AddDate(0, 0, 1), nil
}

// DayOfWeek returns the day of week of a YYYY-MM-DD date, 0=Sunday .. 6=Saturday.
func DayOfWeek(date string) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(d.Weekday()), nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(DateLayout), nil
}

// MaxDate returns the later of two YYYY-MM-DD dates. Lexicographic order
// matches chronological order for this layout.
func MaxDate(a, b string) string {
	if a > b {
		return a
	}
	return b
}
