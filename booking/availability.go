/*
availability.go - Room availability under date-range overlap

PURPOSE:
  The admission math: given a hotel and a requested stay, how many rooms
  are already committed by existing reservations whose date ranges overlap
  the request, and how many remain.

OVERLAP SEMANTICS:
  Ranges are half-open [check_in, check_out). Two ranges overlap iff
  a_start < b_end AND b_start < a_end. A reservation ending on day D and
  one starting on day D do not overlap: checkout morning frees the room
  for a same-day check-in.

COMPLEXITY:
  Linear scans over the reservation slice. Collections are small and
  reloaded per operation, so no index is kept; summation order is
  irrelevant to the result.

SEE ALSO:
  - service.go: Runs the admission check on the pre-insertion set
  - occupancy.go: Per-day projection built on the same predicate
*/
package booking

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// RoomsCommitted sums the rooms of every reservation for the given hotel
// whose stay overlaps [checkIn, checkOut). Pure; no side effects.
func RoomsCommitted(reservations []Reservation, hotelID HotelID, checkIn, checkOut Date) int {
	total := 0
	for _, res := range reservations {
		if res.HotelID != hotelID {
			continue
		}
		if Overlaps(res.CheckIn, res.CheckOut, checkIn, checkOut) {
			total += res.Rooms
		}
	}
	return total
}

// AvailableRooms returns the hotel's uncommitted rooms over [checkIn, checkOut).
// The result can be negative if prior data over-committed the hotel; callers
// must treat a negative result as zero availability.
func AvailableRooms(hotel Hotel, reservations []Reservation, checkIn, checkOut Date) int {
	return hotel.RoomsTotal - RoomsCommitted(reservations, hotel.ID, checkIn, checkOut)
}
