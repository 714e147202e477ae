package availability

import (
	"time"

	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/domain/booking"
)

// gridSlots generates candidate start times at a fixed step inside one
// materialized block, dropping candidates that intersect a busy interval.
// The last candidate starts at blockEnd - duration, so an appointment may
// finish exactly at the end of the block.
func gridSlots(blockStart, blockEnd time.Time, duration, step time.Duration, busy []booking.Interval) []availability.Slot {
	if duration <= 0 || step <= 0 {
		return nil
	}
	if !blockEnd.After(blockStart) {
		return nil
	}
	if blockStart.Add(duration).After(blockEnd) {
		// Block shorter than the service: zero candidates.
		return nil
	}

	var slots []availability.Slot
	for t := blockStart; !t.Add(duration).After(blockEnd); t = t.Add(step) {
		end := t.Add(duration)
		if !overlapsAny(t, end, busy) {
			slots = append(slots, availability.Slot{StartAt: t, EndAt: end})
		}
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []booking.Interval) bool {
	for _, b := range busy {
		// Half-open intervals: [start,end) overlaps [b.Start,b.End) iff start < b.End && b.Start < end.
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
