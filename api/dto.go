/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the domain types
  so the wire contract can evolve without touching booking.

NAMING CONVENTION:
  - *DTO:     Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Handlers parse and hand raw values to the booking service; field
  validation lives in the entity factories, not here.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/reservation-engine/booking"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// HotelDTO represents a hotel in API responses.
type HotelDTO struct {
	ID         string `json:"hotel_id"`
	Name       string `json:"name"`
	RoomsTotal int    `json:"rooms_total"`
}

// CreateHotelRequest is the request to create a hotel.
type CreateHotelRequest struct {
	ID         string `json:"hotel_id"`
	Name       string `json:"name"`
	RoomsTotal int    `json:"rooms_total"`
}

// ModifyHotelRequest carries partial hotel updates; nil keeps the current value.
type ModifyHotelRequest struct {
	Name       *string `json:"name,omitempty"`
	RoomsTotal *int    `json:"rooms_total,omitempty"`
}

// CustomerDTO represents a customer in API responses.
type CustomerDTO struct {
	ID    string `json:"customer_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateCustomerRequest is the request to create a customer.
type CreateCustomerRequest struct {
	ID    string `json:"customer_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ModifyCustomerRequest carries partial customer updates; nil keeps the current value.
type ModifyCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ReservationDTO represents a reservation in API responses.
type ReservationDTO struct {
	ID         string `json:"reservation_id"`
	HotelID    string `json:"hotel_id"`
	CustomerID string `json:"customer_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Rooms      int    `json:"rooms"`
}

// CreateReservationRequest is the request to create a reservation.
// ReservationID may be empty; the handler then generates one.
type CreateReservationRequest struct {
	ID         string `json:"reservation_id,omitempty"`
	HotelID    string `json:"hotel_id"`
	CustomerID string `json:"customer_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Rooms      int    `json:"rooms"`
}

// AvailabilityDTO is the answer to an availability query.
type AvailabilityDTO struct {
	HotelID    string `json:"hotel_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	RoomsTotal int    `json:"rooms_total"`
	Committed  int    `json:"committed"`
	Available  int    `json:"available"`
}

// DayOccupancyDTO is one day of an occupancy report.
type DayOccupancyDTO struct {
	Day       string `json:"day"`
	Committed int    `json:"committed"`
	Rate      string `json:"rate"` // decimal string, e.g. "0.75"
}

// OccupancyDTO is the per-day occupancy report for a hotel.
type OccupancyDTO struct {
	HotelID     string            `json:"hotel_id"`
	RoomsTotal  int               `json:"rooms_total"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Days        []DayOccupancyDTO `json:"days"`
	AverageRate string            `json:"average_rate"`
	PeakDay     string            `json:"peak_day,omitempty"`
	PeakRooms   int               `json:"peak_rooms"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toHotelDTO(h booking.Hotel) HotelDTO {
	return HotelDTO{ID: string(h.ID), Name: h.Name, RoomsTotal: h.RoomsTotal}
}

func toCustomerDTO(c booking.Customer) CustomerDTO {
	return CustomerDTO{ID: string(c.ID), Name: c.Name, Email: c.Email}
}

func toReservationDTO(r booking.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:         string(r.ID),
		HotelID:    string(r.HotelID),
		CustomerID: string(r.CustomerID),
		CheckIn:    r.CheckIn.String(),
		CheckOut:   r.CheckOut.String(),
		Rooms:      r.Rooms,
	}
}

func toReservationDTOs(reservations []booking.Reservation) []ReservationDTO {
	dtos := make([]ReservationDTO, len(reservations))
	for i, r := range reservations {
		dtos[i] = toReservationDTO(r)
	}
	return dtos
}

func toOccupancyDTO(report booking.OccupancyReport) OccupancyDTO {
	dto := OccupancyDTO{
		HotelID:     string(report.HotelID),
		RoomsTotal:  report.RoomsTotal,
		From:        report.From.String(),
		To:          report.To.String(),
		Days:        make([]DayOccupancyDTO, len(report.Days)),
		AverageRate: report.AverageRate().StringFixed(4),
		PeakRooms:   report.Peak.Committed,
	}
	if !report.Peak.Day.IsZero() {
		dto.PeakDay = report.Peak.Day.String()
	}
	for i, d := range report.Days {
		dto.Days[i] = DayOccupancyDTO{
			Day:       d.Day.String(),
			Committed: d.Committed,
			Rate:      d.Rate.StringFixed(4),
		}
	}
	return dto
}
