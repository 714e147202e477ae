package availability

import (
	"testing"
	"time"

	"github.com/sharpcut/booking-backend-go/internal/domain/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoadSaoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestGridSlots_MorningBlock(t *testing.T) {
	loc := mustLoadSaoPaulo(t)
	blockStart := time.Date(2026, 3, 9, 9, 0, 0, 0, loc)
	blockEnd := time.Date(2026, 3, 9, 12, 0, 0, 0, loc)

	slots := gridSlots(blockStart, blockEnd, 90*time.Minute, 30*time.Minute, nil)

	// 09:00..10:30 inclusive at 30-minute steps
	require.Len(t, slots, 4)
	assert.Equal(t, blockStart, slots[0].StartAt)
	assert.Equal(t, time.Date(2026, 3, 9, 10, 30, 0, 0, loc), slots[3].StartAt)
	assert.Equal(t, blockEnd, slots[3].EndAt)
}

func TestGridSlots_CountFormula(t *testing.T) {
	loc := mustLoadSaoPaulo(t)
	step := 30 * time.Minute

	tests := []struct {
		name     string
		blockLen time.Duration
		duration time.Duration
		want     int
	}{
		{"three hour block, thirty minute cut", 3 * time.Hour, 30 * time.Minute, 6},
		{"three hour block, one hour service", 3 * time.Hour, time.Hour, 5},
		{"exact fit", time.Hour, time.Hour, 1},
		{"block shorter than service", time.Hour, 90 * time.Minute, 0},
		{"duration not a multiple of step", 3 * time.Hour, 45 * time.Minute, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blockStart := time.Date(2026, 3, 9, 9, 0, 0, 0, loc)
			slots := gridSlots(blockStart, blockStart.Add(tt.blockLen), tt.duration, step, nil)
			assert.Len(t, slots, tt.want)
		})
	}
}

func TestGridSlots_BusyIntervalRemovesOverlappingStarts(t *testing.T) {
	loc := mustLoadSaoPaulo(t)
	blockStart := time.Date(2026, 3, 9, 9, 0, 0, 0, loc)
	blockEnd := time.Date(2026, 3, 9, 12, 0, 0, 0, loc)

	// A 30-minute appointment at 09:00 removes exactly that start.
	busy := []booking.Interval{{
		Start: blockStart,
		End:   blockStart.Add(30 * time.Minute),
	}}

	slots := gridSlots(blockStart, blockEnd, 30*time.Minute, 30*time.Minute, busy)

	require.Len(t, slots, 5)
	assert.Equal(t, time.Date(2026, 3, 9, 9, 30, 0, 0, loc), slots[0].StartAt)
}

func TestGridSlots_LongServiceBlockedByMidDayAppointment(t *testing.T) {
	loc := mustLoadSaoPaulo(t)
	blockStart := time.Date(2026, 3, 9, 9, 0, 0, 0, loc)
	blockEnd := time.Date(2026, 3, 9, 12, 0, 0, 0, loc)

	// 10:00-10:30 is taken; a one-hour service cannot start at 09:30 or 10:00.
	busy := []booking.Interval{{
		Start: time.Date(2026, 3, 9, 10, 0, 0, 0, loc),
		End:   time.Date(2026, 3, 9, 10, 30, 0, 0, loc),
	}}

	slots := gridSlots(blockStart, blockEnd, time.Hour, 30*time.Minute, busy)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartAt.In(loc).Format("15:04"))
	}
	assert.Equal(t, []string{"09:00", "10:30", "11:00"}, starts)
}

func TestGridSlots_BackToBackAppointmentsDoNotConflict(t *testing.T) {
	loc := mustLoadSaoPaulo(t)
	blockStart := time.Date(2026, 3, 9, 9, 0, 0, 0, loc)
	blockEnd := time.Date(2026, 3, 9, 10, 0, 0, 0, loc)

	// Half-open intervals: an appointment ending at 09:30 leaves 09:30 free.
	busy := []booking.Interval{{
		Start: blockStart,
		End:   blockStart.Add(30 * time.Minute),
	}}

	slots := gridSlots(blockStart, blockEnd, 30*time.Minute, 30*time.Minute, busy)

	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2026, 3, 9, 9, 30, 0, 0, loc), slots[0].StartAt)
}

func TestGridSlots_DegenerateInputs(t *testing.T) {
	loc := mustLoadSaoPaulo(t)
	at := time.Date(2026, 3, 9, 9, 0, 0, 0, loc)

	assert.Nil(t, gridSlots(at, at, 30*time.Minute, 30*time.Minute, nil))
	assert.Nil(t, gridSlots(at.Add(time.Hour), at, 30*time.Minute, 30*time.Minute, nil))
	assert.Nil(t, gridSlots(at, at.Add(time.Hour), 0, 30*time.Minute, nil))
	assert.Nil(t, gridSlots(at, at.Add(time.Hour), 30*time.Minute, 0, nil))
}

func TestOverlapsAny(t *testing.T) {
	loc := mustLoadSaoPaulo(t)
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 9, h, m, 0, 0, loc)
	}
	busy := []booking.Interval{{Start: at(10, 0), End: at(11, 0)}}

	assert.True(t, overlapsAny(at(10, 30), at(11, 30), busy))
	assert.True(t, overlapsAny(at(9, 30), at(10, 30), busy))
	assert.True(t, overlapsAny(at(10, 15), at(10, 45), busy))
	assert.True(t, overlapsAny(at(9, 0), at(12, 0), busy))

	// Shared endpoints are not overlaps
	assert.False(t, overlapsAny(at(9, 0), at(10, 0), busy))
	assert.False(t, overlapsAny(at(11, 0), at(12, 0), busy))
	assert.False(t, overlapsAny(at(9, 0), at(10, 0), nil))
}
