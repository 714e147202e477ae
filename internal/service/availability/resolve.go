package availability

import (
	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
)

// window is a working window in local wall-clock time.
type window struct {
	start string // HH:mm
	end   string // HH:mm
}

// resolveDay applies the precedence policy for one date: a custom override
// replaces everything, an off override clears the day, otherwise the active
// weekly rules for the day of week apply.
func resolveDay(rules []availability.WeeklyRule, overrides []availability.DayOverride, dayOfWeek int) []window {
	var custom []window
	off := false
	for _, o := range overrides {
		switch o.Type {
		case availability.OverrideCustom:
			custom = append(custom, window{start: o.StartTime, end: o.EndTime})
		case availability.OverrideOff:
			off = true
		}
	}

	if len(custom) > 0 {
		return custom
	}
	if off {
		return nil
	}

	var windows []window
	for _, rule := range rules {
		if !rule.Active || rule.DayOfWeek != dayOfWeek {
			continue
		}
		windows = append(windows, window{start: rule.StartTime, end: rule.EndTime})
	}
	return windows
}

// hasConflictingOverrides reports whether both an off and a custom override
// exist for the same date; the custom one wins, but the situation is worth a
// warning because it usually means a stale off entry.
func hasConflictingOverrides(overrides []availability.DayOverride) bool {
	var off, custom bool
	for _, o := range overrides {
		switch o.Type {
		case availability.OverrideOff:
			off = true
		case availability.OverrideCustom:
			custom = true
		}
	}
	return off && custom
}
