package availability

import "time"

// Scheduling policy. The grid step is a product decision: clients get
// predictable start times regardless of service duration, accepting some
// schedule fragmentation.
const (
	SlotStep           = 30 * time.Minute
	MaxSlots           = 240
	DefaultHorizonDays = 60
)

// WeeklyRule is a recurring working window for an employee. Multiple rules
// per (employee, day-of-week) are allowed for split shifts. The set is
// replaced wholesale on update.
type WeeklyRule struct {
	ID         string
	EmployeeID string
	DayOfWeek  int    // 0=Sunday .. 6=Saturday
	StartTime  string // HH:mm
	EndTime    string // HH:mm
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type OverrideType string

const (
	OverrideOff    OverrideType = "off"
	OverrideCustom OverrideType = "custom"
)

var OverrideTypeValues = []string{
	string(OverrideOff),
	string(OverrideCustom),
}

// DayOverride is a date-specific exception to the weekly rules: either a
// day off or custom hours replacing the weekly windows for that date.
// StartTime/EndTime are only meaningful when Type is OverrideCustom; the
// constructors below are the only intended way to build one.
// Keyed by (employee, date, type) for idempotent insertion.
type DayOverride struct {
	ID         string
	EmployeeID string
	Date       string // YYYY-MM-DD in the business time zone
	Type       OverrideType
	StartTime  string // HH:mm, custom only
	EndTime    string // HH:mm, custom only
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewOffOverride(employeeID, date string, note *string) DayOverride {
	return DayOverride{
		EmployeeID: employeeID,
		Date:       date,
		Type:       OverrideOff,
		Note:       note,
	}
}

func NewCustomOverride(employeeID, date, startTime, endTime string, note *string) DayOverride {
	return DayOverride{
		EmployeeID: employeeID,
		Date:       date,
		Type:       OverrideCustom,
		StartTime:  startTime,
		EndTime:    endTime,
		Note:       note,
	}
}

// Block is one contiguous materialized working window on a concrete date.
// Fully derived from WeeklyRule + DayOverride; the materializer is the only
// writer.
type Block struct {
	ID         string
	EmployeeID string
	StartAt    time.Time
	EndAt      time.Time
	CreatedAt  time.Time
}

// Slot is a bookable start time with its implied end.
type Slot struct {
	StartAt time.Time
	EndAt   time.Time
}
