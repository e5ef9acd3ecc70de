/*
entities.go - Value objects for hotels, customers, and reservations

PURPOSE:
  Defines the three entity types and their construct-or-reject factories.
  An entity that exists is valid: the only way to obtain one is through a
  factory that has checked every field. "Modify" is therefore implemented
  by the service as reconstruct-and-replace, never in-place mutation.

RECORD CONVERSION:
  Each entity converts symmetrically to and from a Record (the raw
  key-value form the record store persists):

    rec := hotel.Record()
    same, err := HotelFromRecord(rec)   // round-trip preserving

  FromRecord runs the same validation as the factory, so corrupt records
  on disk are rejected (and skipped by the service) rather than admitted.

SEE ALSO:
  - errors.go: FieldError returned on rejection
  - store.go: Record type and store contract
  - service.go: Load/skip-invalid and reconstruct-and-replace logic
*/
package booking

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type HotelID string
type CustomerID string
type ReservationID string

// =============================================================================
// HOTEL
// =============================================================================

// Hotel is a bookable property with a fixed room inventory.
type Hotel struct {
	ID         HotelID
	Name       string
	RoomsTotal int
}

// NewHotel validates and constructs a Hotel.
func NewHotel(id HotelID, name string, roomsTotal int) (Hotel, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Hotel{}, &FieldError{Field: "hotel_id", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(name) == "" {
		return Hotel{}, &FieldError{Field: "name", Reason: "cannot be empty"}
	}
	if roomsTotal <= 0 {
		return Hotel{}, &FieldError{Field: "rooms_total", Reason: "must be a positive integer"}
	}
	return Hotel{ID: id, Name: name, RoomsTotal: roomsTotal}, nil
}

// Record serializes the hotel to its persisted key-value form.
func (h Hotel) Record() Record {
	return Record{
		"hotel_id":    string(h.ID),
		"name":        h.Name,
		"rooms_total": h.RoomsTotal,
	}
}

// HotelFromRecord deserializes and validates a hotel from a raw record.
func HotelFromRecord(rec Record) (Hotel, error) {
	id, err := stringField(rec, "hotel_id")
	if err != nil {
		return Hotel{}, err
	}
	name, err := stringField(rec, "name")
	if err != nil {
		return Hotel{}, err
	}
	rooms, err := intField(rec, "rooms_total")
	if err != nil {
		return Hotel{}, err
	}
	return NewHotel(HotelID(id), name, rooms)
}

// =============================================================================
// CUSTOMER
// =============================================================================

// Customer is a guest who can hold reservations.
type Customer struct {
	ID    CustomerID
	Name  string
	Email string
}

// NewCustomer validates and constructs a Customer.
func NewCustomer(id CustomerID, name, email string) (Customer, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Customer{}, &FieldError{Field: "customer_id", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(name) == "" {
		return Customer{}, &FieldError{Field: "name", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return Customer{}, &FieldError{Field: "email", Reason: "must contain '@'"}
	}
	return Customer{ID: id, Name: name, Email: email}, nil
}

// Record serializes the customer to its persisted key-value form.
func (c Customer) Record() Record {
	return Record{
		"customer_id": string(c.ID),
		"name":        c.Name,
		"email":       c.Email,
	}
}

// CustomerFromRecord deserializes and validates a customer from a raw record.
func CustomerFromRecord(rec Record) (Customer, error) {
	id, err := stringField(rec, "customer_id")
	if err != nil {
		return Customer{}, err
	}
	name, err := stringField(rec, "name")
	if err != nil {
		return Customer{}, err
	}
	email, err := stringField(rec, "email")
	if err != nil {
		return Customer{}, err
	}
	return NewCustomer(CustomerID(id), name, email)
}

// =============================================================================
// RESERVATION
// =============================================================================

// Reservation is a stay of one or more rooms over a half-open date range
// [CheckIn, CheckOut). Reservations are immutable once created: the only
// lifecycle transitions are create and cancel (hard delete).
type Reservation struct {
	ID         ReservationID
	HotelID    HotelID
	CustomerID CustomerID
	CheckIn    Date
	CheckOut   Date
	Rooms      int
}

// NewReservation validates and constructs a Reservation. Referential checks
// against hotels/customers belong to the service; this validates shape only.
func NewReservation(id ReservationID, hotelID HotelID, customerID CustomerID, checkIn, checkOut Date, rooms int) (Reservation, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Reservation{}, &FieldError{Field: "reservation_id", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(string(hotelID)) == "" {
		return Reservation{}, &FieldError{Field: "hotel_id", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(string(customerID)) == "" {
		return Reservation{}, &FieldError{Field: "customer_id", Reason: "cannot be empty"}
	}
	if !checkOut.After(checkIn) {
		return Reservation{}, &FieldError{Field: "check_out", Reason: "must be after check_in"}
	}
	if rooms <= 0 {
		return Reservation{}, &FieldError{Field: "rooms", Reason: "must be a positive integer"}
	}
	return Reservation{
		ID:         id,
		HotelID:    hotelID,
		CustomerID: customerID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Rooms:      rooms,
	}, nil
}

// Record serializes the reservation to its persisted key-value form.
// Dates are ISO-8601 calendar dates (YYYY-MM-DD).
func (r Reservation) Record() Record {
	return Record{
		"reservation_id": string(r.ID),
		"hotel_id":       string(r.HotelID),
		"customer_id":    string(r.CustomerID),
		"check_in":       r.CheckIn.String(),
		"check_out":      r.CheckOut.String(),
		"rooms":          r.Rooms,
	}
}

// ReservationFromRecord deserializes and validates a reservation from a raw record.
func ReservationFromRecord(rec Record) (Reservation, error) {
	id, err := stringField(rec, "reservation_id")
	if err != nil {
		return Reservation{}, err
	}
	hotelID, err := stringField(rec, "hotel_id")
	if err != nil {
		return Reservation{}, err
	}
	customerID, err := stringField(rec, "customer_id")
	if err != nil {
		return Reservation{}, err
	}
	checkIn, err := dateField(rec, "check_in")
	if err != nil {
		return Reservation{}, err
	}
	checkOut, err := dateField(rec, "check_out")
	if err != nil {
		return Reservation{}, err
	}
	rooms, err := intField(rec, "rooms")
	if err != nil {
		return Reservation{}, err
	}
	return NewReservation(ReservationID(id), HotelID(hotelID), CustomerID(customerID), checkIn, checkOut, rooms)
}

// =============================================================================
// RECORD FIELD HELPERS
// =============================================================================

func stringField(rec Record, key string) (string, error) {
	v, ok := rec[key]
	if !ok {
		return "", &FieldError{Field: key, Reason: "missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &FieldError{Field: key, Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	return s, nil
}

// intField accepts the numeric forms encoding/json can hand back
// (float64 by default, json.Number with UseNumber) plus native ints.
func intField(rec Record, key string) (int, error) {
	v, ok := rec[key]
	if !ok {
		return 0, &FieldError{Field: key, Reason: "missing"}
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, &FieldError{Field: key, Reason: "expected integer, got fraction"}
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, &FieldError{Field: key, Reason: "expected integer"}
		}
		return int(i), nil
	default:
		return 0, &FieldError{Field: key, Reason: fmt.Sprintf("expected integer, got %T", v)}
	}
}

func dateField(rec Record, key string) (Date, error) {
	s, err := stringField(rec, key)
	if err != nil {
		return Date{}, err
	}
	d, err := ParseDate(s)
	if err != nil {
		return Date{}, &FieldError{Field: key, Reason: err.Error()}
	}
	return d, nil
}
