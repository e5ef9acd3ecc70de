package booking

import "github.com/shopspring/decimal"

// =============================================================================
// OCCUPANCY REPORT - Per-day utilization projection
// =============================================================================

// DayOccupancy is the committed-room count for a single day, with the
// utilization rate committed/rooms_total as an exact decimal.
type DayOccupancy struct {
	Day       Date
	Committed int
	Rate      decimal.Decimal
}

// OccupancyReport projects a hotel's committed rooms over each day of a
// half-open range. Report-only; nothing is persisted.
type OccupancyReport struct {
	HotelID    HotelID
	RoomsTotal int
	From       Date
	To         Date
	Days       []DayOccupancy

	// Peak is the first day with the highest committed count.
	// Zero-valued when the range is empty.
	Peak DayOccupancy
}

// BuildOccupancyReport walks every day in [from, to) and sums the rooms of
// reservations active on that day. A day counts a reservation iff it falls
// inside the reservation's half-open stay, so check-out days are free.
func BuildOccupancyReport(hotel Hotel, reservations []Reservation, from, to Date) OccupancyReport {
	report := OccupancyReport{
		HotelID:    hotel.ID,
		RoomsTotal: hotel.RoomsTotal,
		From:       from,
		To:         to,
	}

	total := decimal.NewFromInt(int64(hotel.RoomsTotal))
	for _, day := range DaysIn(from, to) {
		committed := RoomsCommitted(reservations, hotel.ID, day, day.AddDays(1))
		entry := DayOccupancy{
			Day:       day,
			Committed: committed,
			Rate:      decimal.NewFromInt(int64(committed)).Div(total),
		}
		report.Days = append(report.Days, entry)
		if committed > report.Peak.Committed || report.Peak.Day.IsZero() {
			report.Peak = entry
		}
	}
	return report
}

// AverageRate returns the mean utilization across the report's days,
// or zero for an empty range.
func (r OccupancyReport) AverageRate() decimal.Decimal {
	if len(r.Days) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, d := range r.Days {
		sum = sum.Add(d.Rate)
	}
	return sum.Div(decimal.NewFromInt(int64(len(r.Days))))
}
