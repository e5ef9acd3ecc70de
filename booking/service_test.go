package booking_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/reservation-engine/booking"
	"github.com/warp/reservation-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(t *testing.T) (*booking.Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return booking.NewService(store, log), store
}

func mustCreateHotel(t *testing.T, svc *booking.Service, id string, rooms int) {
	t.Helper()
	_, err := svc.CreateHotel(context.Background(), booking.HotelID(id), "Hotel "+id, rooms)
	require.NoError(t, err)
}

func mustCreateCustomer(t *testing.T, svc *booking.Service, id string) {
	t.Helper()
	_, err := svc.CreateCustomer(context.Background(), booking.CustomerID(id), "Guest "+id, id+"@example.com")
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// =============================================================================
// HOTEL CRUD
// =============================================================================

func TestCreateAndGetHotel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	hotel, err := svc.CreateHotel(ctx, "H1", "Hotel Uno", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, hotel.RoomsTotal)

	got, err := svc.GetHotel(ctx, "H1")
	require.NoError(t, err)
	assert.Equal(t, hotel, got)
}

func TestCreateHotel_DuplicateID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateHotel(t, svc, "H1", 10)
	_, err := svc.CreateHotel(ctx, "H1", "Hotel Uno Again", 5)
	assert.ErrorIs(t, err, booking.ErrDuplicateID)
}

func TestModifyHotel_PartialUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)

	// WHEN: Only the name is overridden
	updated, err := svc.ModifyHotel(ctx, "H1", strPtr("Hotel 1"), nil)
	require.NoError(t, err)

	// THEN: rooms_total keeps its current value
	assert.Equal(t, "Hotel 1", updated.Name)
	assert.Equal(t, 10, updated.RoomsTotal)
}

func TestModifyHotel_InvalidOverrideRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)

	_, err := svc.ModifyHotel(ctx, "H1", nil, intPtr(0))
	assert.ErrorIs(t, err, booking.ErrValidation)

	// Previous value survives the rejected modify.
	got, err := svc.GetHotel(ctx, "H1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.RoomsTotal)
}

func TestModifyHotel_NoOverridesStillRevalidates(t *testing.T) {
	// A modify with nothing overridden reconstructs from current fields
	// and succeeds; it acts as a revalidation pass.
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)

	updated, err := svc.ModifyHotel(ctx, "H1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.RoomsTotal)
}

func TestModifyHotel_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ModifyHotel(context.Background(), "nope", strPtr("x"), nil)
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestDeleteHotel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)

	require.NoError(t, svc.DeleteHotel(ctx, "H1"))

	_, err := svc.GetHotel(ctx, "H1")
	assert.ErrorIs(t, err, booking.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteHotel(ctx, "H1"), booking.ErrNotFound)
}

// =============================================================================
// CUSTOMER CRUD
// =============================================================================

func TestCustomerLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, "C1", "Edgar", "edgar@example.com")
	require.NoError(t, err)

	_, err = svc.CreateCustomer(ctx, "C1", "Someone Else", "other@example.com")
	assert.ErrorIs(t, err, booking.ErrDuplicateID)

	updated, err := svc.ModifyCustomer(ctx, "C1", strPtr("Edgar Rosas"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Edgar Rosas", updated.Name)
	assert.Equal(t, customer.Email, updated.Email)

	// Invalid email override fails full revalidation.
	_, err = svc.ModifyCustomer(ctx, "C1", nil, strPtr("not-an-email"))
	assert.ErrorIs(t, err, booking.ErrValidation)

	require.NoError(t, svc.DeleteCustomer(ctx, "C1"))
	assert.ErrorIs(t, svc.DeleteCustomer(ctx, "C1"), booking.ErrNotFound)
}

// =============================================================================
// RESERVATION ADMISSION
// =============================================================================

func TestCreateReservation_Success(t *testing.T) {
	// GIVEN: Hotel H1 with 10 rooms and a customer
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)
	mustCreateCustomer(t, svc, "C1")

	// WHEN: R1 books 3 rooms over [2026-03-01, 2026-03-05)
	_, err := svc.CreateReservation(ctx, "R1", "H1", "C1", march(1), march(5), 3)
	require.NoError(t, err)

	// THEN: Availability over the same range is 7
	avail, err := svc.Availability(ctx, "H1", march(1), march(5))
	require.NoError(t, err)
	assert.Equal(t, 7, avail.Available)
	assert.Equal(t, 3, avail.Committed)
}

func TestCreateReservation_InsufficientCapacity(t *testing.T) {
	// GIVEN: Hotel H1 with 3 rooms, fully booked over [Mar 1, Mar 5)
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 3)
	mustCreateCustomer(t, svc, "C1")
	_, err := svc.CreateReservation(ctx, "R1", "H1", "C1", march(1), march(5), 3)
	require.NoError(t, err)

	// WHEN: R2 requests 1 room over a contained range
	_, err = svc.CreateReservation(ctx, "R2", "H1", "C1", march(2), march(4), 1)

	// THEN: Rejected with requested/available detail
	require.ErrorIs(t, err, booking.ErrInsufficientCapacity)
	var capErr *booking.CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 1, capErr.Requested)
	assert.Equal(t, 0, capErr.Available)

	// And nothing was written.
	assert.Len(t, svc.ListReservations(ctx, booking.ReservationFilter{}), 1)
}

func TestCreateReservation_BackToBackStaysShareNoNight(t *testing.T) {
	// Checkout morning frees the room: a stay ending Mar 5 and one
	// starting Mar 5 both fit in a single-room hotel.
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 1)
	mustCreateCustomer(t, svc, "C1")

	_, err := svc.CreateReservation(ctx, "R1", "H1", "C1", march(1), march(5), 1)
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, "R2", "H1", "C1", march(5), march(8), 1)
	require.NoError(t, err)
}

func TestCreateReservation_HotelNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateCustomer(t, svc, "C1")

	_, err := svc.CreateReservation(ctx, "R1", "missing", "C1", march(1), march(5), 1)

	require.ErrorIs(t, err, booking.ErrNotFound)
	var nfErr *booking.NotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "hotel", nfErr.Kind)
	assert.Empty(t, svc.ListReservations(ctx, booking.ReservationFilter{}))
}

func TestCreateReservation_CustomerNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)

	_, err := svc.CreateReservation(ctx, "R1", "H1", "missing", march(1), march(5), 1)

	require.ErrorIs(t, err, booking.ErrNotFound)
	var nfErr *booking.NotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "customer", nfErr.Kind)
}

func TestCreateReservation_DuplicateID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)
	mustCreateCustomer(t, svc, "C1")

	_, err := svc.CreateReservation(ctx, "R1", "H1", "C1", march(1), march(5), 1)
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, "R1", "H1", "C1", march(10), march(12), 1)
	assert.ErrorIs(t, err, booking.ErrDuplicateID)
}

func TestCreateReservation_InvalidDatesRejected(t *testing.T) {
	// check_in == check_out fails entity validation before any capacity
	// check, and nothing is persisted.
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)
	mustCreateCustomer(t, svc, "C1")

	_, err := svc.CreateReservation(ctx, "R1", "H1", "C1", march(1), march(1), 1)

	assert.ErrorIs(t, err, booking.ErrValidation)
	assert.Empty(t, svc.ListReservations(ctx, booking.ReservationFilter{}))
}

func TestCapacityInvariant_HeldAfterEverySuccessfulCreate(t *testing.T) {
	// After any sequence of accepted reservations, no day may have more
	// rooms committed than the hotel owns.
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 5)
	mustCreateCustomer(t, svc, "C1")

	requests := []struct {
		id      string
		in, out int
		rooms   int
	}{
		{"R1", 1, 5, 3},
		{"R2", 3, 8, 2},
		{"R3", 4, 6, 2}, // would exceed on Mar 4: 3+2+2 > 5
		{"R4", 5, 9, 3},
		{"R5", 1, 3, 2},
	}
	for _, req := range requests {
		// Rejections are fine; only admitted stays matter here.
		svc.CreateReservation(ctx, booking.ReservationID(req.id), "H1", "C1",
			march(req.in), march(req.out), req.rooms)
	}

	reservations := svc.ListReservations(ctx, booking.ReservationFilter{})
	for day := 1; day < 10; day++ {
		committed := booking.RoomsCommitted(reservations, "H1", march(day), march(day+1))
		assert.LessOrEqualf(t, committed, 5, "over-committed on 2026-03-%02d", day)
	}
}

// =============================================================================
// CANCEL
// =============================================================================

func TestCancelReservation_IdempotentObservation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)
	mustCreateCustomer(t, svc, "C1")
	_, err := svc.CreateReservation(ctx, "R1", "H1", "C1", march(1), march(5), 3)
	require.NoError(t, err)

	// First cancel succeeds, second fails NotFound.
	require.NoError(t, svc.CancelReservation(ctx, "R1"))
	assert.ErrorIs(t, svc.CancelReservation(ctx, "R1"), booking.ErrNotFound)
}

func TestCancelReservation_FreesCapacity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 3)
	mustCreateCustomer(t, svc, "C1")
	_, err := svc.CreateReservation(ctx, "R1", "H1", "C1", march(1), march(5), 3)
	require.NoError(t, err)

	_, err = svc.CreateReservation(ctx, "R2", "H1", "C1", march(2), march(4), 1)
	require.ErrorIs(t, err, booking.ErrInsufficientCapacity)

	require.NoError(t, svc.CancelReservation(ctx, "R1"))

	_, err = svc.CreateReservation(ctx, "R2", "H1", "C1", march(2), march(4), 1)
	assert.NoError(t, err)
}

// =============================================================================
// DANGLING REFERENCES / CORRUPTION TOLERANCE
// =============================================================================

func TestDeleteHotel_LeavesReservationsDangling(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)
	mustCreateCustomer(t, svc, "C1")
	_, err := svc.CreateReservation(ctx, "R1", "H1", "C1", march(1), march(5), 3)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHotel(ctx, "H1"))

	// The orphaned reservation stays retrievable and cancelable.
	got, err := svc.GetReservation(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, booking.HotelID("H1"), got.HotelID)
	assert.NoError(t, svc.CancelReservation(ctx, "R1"))
}

func TestLoad_SkipsInvalidRecords(t *testing.T) {
	// GIVEN: A store holding one valid and one corrupt hotel record
	svc, store := newTestService(t)
	ctx := context.Background()
	store.Save(ctx, booking.CollectionHotels, []booking.Record{
		{"hotel_id": "H1", "name": "Hotel Uno", "rooms_total": float64(10)},
		{"hotel_id": "H2"}, // missing fields
	})

	// THEN: Only the valid record is visible
	hotels := svc.ListHotels(ctx)
	require.Len(t, hotels, 1)
	assert.Equal(t, booking.HotelID("H1"), hotels[0].ID)
}

func TestAvailability_ClampsOverCommitToZero(t *testing.T) {
	// GIVEN: Prior data over-committed H1 (2 rooms, 3 booked)
	svc, store := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 2)
	store.Save(ctx, booking.CollectionReservations, []booking.Record{
		{
			"reservation_id": "R1", "hotel_id": "H1", "customer_id": "C1",
			"check_in": "2026-03-01", "check_out": "2026-03-05", "rooms": float64(3),
		},
	})

	avail, err := svc.Availability(ctx, "H1", march(1), march(5))
	require.NoError(t, err)
	assert.Equal(t, 0, avail.Available)
	assert.Equal(t, 3, avail.Committed)

	// Any positive request still fails, reporting the raw negative figure.
	mustCreateCustomer(t, svc, "C1")
	_, err = svc.CreateReservation(ctx, "R2", "H1", "C1", march(2), march(3), 1)
	var capErr *booking.CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, -1, capErr.Available)
}

// =============================================================================
// LISTING / FILTERS
// =============================================================================

func TestListReservations_Filters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateHotel(t, svc, "H1", 10)
	mustCreateHotel(t, svc, "H2", 10)
	mustCreateCustomer(t, svc, "C1")
	mustCreateCustomer(t, svc, "C2")

	_, err := svc.CreateReservation(ctx, "R1", "H1", "C1", march(1), march(3), 1)
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, "R2", "H2", "C1", march(1), march(3), 1)
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, "R3", "H1", "C2", march(1), march(3), 1)
	require.NoError(t, err)

	assert.Len(t, svc.ListReservations(ctx, booking.ReservationFilter{}), 3)
	assert.Len(t, svc.ListReservations(ctx, booking.ReservationFilter{HotelID: "H1"}), 2)
	assert.Len(t, svc.ListReservations(ctx, booking.ReservationFilter{CustomerID: "C1"}), 2)
	assert.Len(t, svc.ListReservations(ctx, booking.ReservationFilter{HotelID: "H1", CustomerID: "C1"}), 1)
}

func TestAvailability_InvalidRange(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateHotel(t, svc, "H1", 10)

	_, err := svc.Availability(context.Background(), "H1", march(5), march(5))
	assert.ErrorIs(t, err, booking.ErrValidation)
}
