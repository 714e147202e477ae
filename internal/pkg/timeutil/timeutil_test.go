package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saoPaulo(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestLocalDate_CrossesMidnight(t *testing.T) {
	loc := saoPaulo(t)

	// 01:30 UTC is still the previous evening in Sao Paulo (UTC-3)
	instant := time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-09", LocalDate(instant, loc))
	assert.Equal(t, "2026-03-10", LocalDate(instant, time.UTC))
}

func TestLocalDateTime(t *testing.T) {
	loc := saoPaulo(t)
	instant := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-10 09:00:00", LocalDateTime(instant, loc))
}

func TestAt_RoundTripsWithLocalDate(t *testing.T) {
	loc := saoPaulo(t)

	instant, err := At("2026-03-09", "09:30", loc)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-09", LocalDate(instant, loc))
	assert.Equal(t, "2026-03-09 09:30:00", LocalDateTime(instant, loc))
}

func TestDayBounds(t *testing.T) {
	loc := saoPaulo(t)

	start, end, err := DayBounds("2026-03-09", loc)
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.Equal(t, "2026-03-09", LocalDate(start, loc))
	assert.Equal(t, "2026-03-10", LocalDate(end, loc))

	_, _, err = DayBounds("09/03/2026", loc)
	assert.Error(t, err)
}

func TestParseTimeOfDay(t *testing.T) {
	minutes, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = ParseTimeOfDay("9h30")
	assert.Error(t, err)
}

func TestDayOfWeek(t *testing.T) {
	// 2026-03-09 is a Monday
	dow, err := DayOfWeek("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, 1, dow)

	dow, err = DayOfWeek("2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, 0, dow)
}

func TestAddDaysAndMaxDate(t *testing.T) {
	next, err := AddDays("2026-02-28", 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", next)

	assert.Equal(t, "2026-03-01", MaxDate("2026-02-28", "2026-03-01"))
	assert.Equal(t, "2026-03-01", MaxDate("2026-03-01", "2026-02-28"))
}
