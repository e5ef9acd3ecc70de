package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/reservation-engine/booking"
)

// =============================================================================
// PARSING AND FORMATTING
// =============================================================================

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := booking.ParseDate("2026-03-05")
	require.NoError(t, err)

	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 5, d.Day())
	assert.Equal(t, "2026-03-05", d.String())
}

func TestParseDate_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "05/03/2026", "2026-3-5", "2026-03-05T00:00:00Z", "not a date"} {
		_, err := booking.ParseDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

// =============================================================================
// COMPARISON
// =============================================================================

func TestDate_Comparisons(t *testing.T) {
	earlier := booking.NewDate(2026, time.March, 1)
	later := booking.NewDate(2026, time.March, 5)
	same := booking.NewDate(2026, time.March, 1)

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
	assert.True(t, later.After(earlier))

	assert.True(t, earlier.Equal(same))
	assert.False(t, earlier.Equal(later))

	assert.True(t, earlier.BeforeOrEqual(same))
	assert.True(t, earlier.BeforeOrEqual(later))
	assert.False(t, later.BeforeOrEqual(earlier))

	assert.True(t, earlier.AfterOrEqual(same))
	assert.True(t, later.AfterOrEqual(earlier))
	assert.False(t, earlier.AfterOrEqual(later))
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func TestDaysBetween(t *testing.T) {
	in := booking.NewDate(2026, time.March, 1)
	out := booking.NewDate(2026, time.March, 5)

	assert.Equal(t, 4, booking.DaysBetween(in, out))
	assert.Equal(t, -4, booking.DaysBetween(out, in))
	assert.Equal(t, 0, booking.DaysBetween(in, in))

	// Spans a month boundary.
	assert.Equal(t, 3, booking.DaysBetween(booking.NewDate(2026, time.February, 27), booking.NewDate(2026, time.March, 2)))
}

func TestAddDays_AgreesWithDaysBetween(t *testing.T) {
	start := booking.NewDate(2026, time.December, 30)
	moved := start.AddDays(5)

	assert.Equal(t, "2027-01-04", moved.String())
	assert.Equal(t, 5, booking.DaysBetween(start, moved))
}

func TestToday_IsAMidnightCalendarDate(t *testing.T) {
	today := booking.Today()

	assert.True(t, today.Equal(booking.Today()))
	assert.False(t, today.IsZero())

	// Formatting and reparsing loses nothing: no time-of-day component.
	reparsed, err := booking.ParseDate(today.String())
	require.NoError(t, err)
	assert.True(t, today.Equal(reparsed))
}
