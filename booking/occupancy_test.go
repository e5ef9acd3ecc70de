package booking_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/reservation-engine/booking"
)

func TestBuildOccupancyReport_PerDayCommitment(t *testing.T) {
	// GIVEN: H1 with 10 rooms, 3 rooms booked over [Mar 1, Mar 5)
	hotel, err := booking.NewHotel("H1", "Hotel Uno", 10)
	require.NoError(t, err)
	reservations := []booking.Reservation{
		stay("R1", "H1", march(1), march(5), 3),
		stay("R2", "H1", march(3), march(6), 2),
	}

	// WHEN: Reporting over [Mar 1, Mar 7)
	report := booking.BuildOccupancyReport(hotel, reservations, march(1), march(7))

	// THEN: Each day reflects the stays active that night; checkout days are free
	require.Len(t, report.Days, 6)
	wantCommitted := []int{3, 3, 5, 5, 2, 0}
	for i, want := range wantCommitted {
		assert.Equalf(t, want, report.Days[i].Committed, "day %s", report.Days[i].Day)
	}

	assert.Equal(t, march(3), report.Peak.Day)
	assert.Equal(t, 5, report.Peak.Committed)
	assert.True(t, report.Days[2].Rate.Equal(decimal.RequireFromString("0.5")))
}

func TestOccupancyReport_AverageRate(t *testing.T) {
	hotel, err := booking.NewHotel("H1", "Hotel Uno", 4)
	require.NoError(t, err)
	reservations := []booking.Reservation{
		stay("R1", "H1", march(1), march(2), 2), // one night at 0.5
	}

	report := booking.BuildOccupancyReport(hotel, reservations, march(1), march(3))
	// (0.5 + 0) / 2 days
	assert.True(t, report.AverageRate().Equal(decimal.RequireFromString("0.25")))
}

func TestOccupancyReport_EmptyRange(t *testing.T) {
	hotel, err := booking.NewHotel("H1", "Hotel Uno", 4)
	require.NoError(t, err)

	report := booking.BuildOccupancyReport(hotel, nil, march(5), march(5))
	assert.Empty(t, report.Days)
	assert.True(t, report.AverageRate().IsZero())
}

func TestService_Occupancy(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)
	mustCreateCustomer(t, svc, "C1")
	_, err := svc.CreateReservation(ctx, "R1", "H1", "C1", march(1), march(5), 3)
	require.NoError(t, err)

	report, err := svc.Occupancy(ctx, "H1", march(1), march(6))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Peak.Committed)

	_, err = svc.Occupancy(ctx, "missing", march(1), march(6))
	assert.ErrorIs(t, err, booking.ErrNotFound)
}
