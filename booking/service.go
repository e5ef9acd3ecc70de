/*
service.go - Reservation service: CRUD orchestration and admission

PURPOSE:
  Orchestrates every operation as load -> validate -> mutate -> persist
  against the record store. There is no cache: each call reloads the full
  collection, works on it in memory, and writes the full result back.

ADMISSION (create reservation), first failure wins, no partial writes:
  1. Load hotels, customers, reservations
  2. DuplicateID      - reservation id already exists
  3. NotFound(hotel)  - hotel_id matches no hotel
  4. NotFound(customer) - customer_id matches no customer
  5. Validation       - reservation value fails construction
  6. InsufficientCapacity - rooms > available over [check_in, check_out)
  7. Append and persist the reservations collection

CORRUPTION TOLERANCE:
  Records that fail entity validation on load are logged and skipped, the
  same way the store drops non-object elements. An operation therefore sees
  only the valid subset, and a subsequent save persists only that subset.

LIFECYCLE NOTES:
  - Cancel is a hard delete; no tombstone remains. Cancelling twice
    succeeds once and fails NotFound the second time.
  - Deleting a hotel does not cascade: its reservations stay retrievable
    and cancelable by id, and are never revalidated.
  - Modify reconstructs the entity from current-or-override fields and
    re-runs full validation, even when nothing was overridden.

SEE ALSO:
  - availability.go: The admission math
  - store.go: Persistence contract and its fault absorption
*/
package booking

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Service implements the booking operations over a record store.
// Safe for sequential use only; see the concurrency note in store.go.
type Service struct {
	store RecordStore
	log   *logrus.Logger
}

// NewService creates a Service over the given store.
func NewService(store RecordStore, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: store, log: log}
}

// =============================================================================
// LOAD / SAVE - entity collections (invalid records skipped, not fatal)
// =============================================================================

func (s *Service) loadHotels(ctx context.Context) []Hotel {
	raw := s.store.Load(ctx, CollectionHotels)
	hotels := make([]Hotel, 0, len(raw))
	for idx, rec := range raw {
		h, err := HotelFromRecord(rec)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"collection": CollectionHotels,
				"index":      idx,
			}).WithError(err).Error("skipping invalid hotel record")
			continue
		}
		hotels = append(hotels, h)
	}
	return hotels
}

func (s *Service) saveHotels(ctx context.Context, hotels []Hotel) {
	records := make([]Record, len(hotels))
	for i, h := range hotels {
		records[i] = h.Record()
	}
	s.store.Save(ctx, CollectionHotels, records)
}

func (s *Service) loadCustomers(ctx context.Context) []Customer {
	raw := s.store.Load(ctx, CollectionCustomers)
	customers := make([]Customer, 0, len(raw))
	for idx, rec := range raw {
		c, err := CustomerFromRecord(rec)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"collection": CollectionCustomers,
				"index":      idx,
			}).WithError(err).Error("skipping invalid customer record")
			continue
		}
		customers = append(customers, c)
	}
	return customers
}

func (s *Service) saveCustomers(ctx context.Context, customers []Customer) {
	records := make([]Record, len(customers))
	for i, c := range customers {
		records[i] = c.Record()
	}
	s.store.Save(ctx, CollectionCustomers, records)
}

func (s *Service) loadReservations(ctx context.Context) []Reservation {
	raw := s.store.Load(ctx, CollectionReservations)
	reservations := make([]Reservation, 0, len(raw))
	for idx, rec := range raw {
		r, err := ReservationFromRecord(rec)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"collection": CollectionReservations,
				"index":      idx,
			}).WithError(err).Error("skipping invalid reservation record")
			continue
		}
		reservations = append(reservations, r)
	}
	return reservations
}

func (s *Service) saveReservations(ctx context.Context, reservations []Reservation) {
	records := make([]Record, len(reservations))
	for i, r := range reservations {
		records[i] = r.Record()
	}
	s.store.Save(ctx, CollectionReservations, records)
}

// =============================================================================
// FIND HELPERS - linear scan, first match
// =============================================================================

func findHotel(hotels []Hotel, id HotelID) (Hotel, bool) {
	for _, h := range hotels {
		if h.ID == id {
			return h, true
		}
	}
	return Hotel{}, false
}

func findCustomer(customers []Customer, id CustomerID) (Customer, bool) {
	for _, c := range customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

func findReservation(reservations []Reservation, id ReservationID) (Reservation, bool) {
	for _, r := range reservations {
		if r.ID == id {
			return r, true
		}
	}
	return Reservation{}, false
}

// =============================================================================
// HOTELS
// =============================================================================

// CreateHotel validates and persists a new hotel.
func (s *Service) CreateHotel(ctx context.Context, id HotelID, name string, roomsTotal int) (Hotel, error) {
	hotels := s.loadHotels(ctx)
	if _, ok := findHotel(hotels, id); ok {
		return Hotel{}, &DuplicateIDError{Kind: "hotel", ID: string(id)}
	}

	hotel, err := NewHotel(id, name, roomsTotal)
	if err != nil {
		return Hotel{}, err
	}

	s.saveHotels(ctx, append(hotels, hotel))
	return hotel, nil
}

// GetHotel returns a hotel by id.
func (s *Service) GetHotel(ctx context.Context, id HotelID) (Hotel, error) {
	hotel, ok := findHotel(s.loadHotels(ctx), id)
	if !ok {
		return Hotel{}, &NotFoundError{Kind: "hotel", ID: string(id)}
	}
	return hotel, nil
}

// ListHotels returns all hotels in stored order.
func (s *Service) ListHotels(ctx context.Context) []Hotel {
	return s.loadHotels(ctx)
}

// ModifyHotel rebuilds the hotel from current-or-override fields and
// re-validates the whole value. Nil means "keep current". Reducing
// rooms_total does not re-check existing reservations.
func (s *Service) ModifyHotel(ctx context.Context, id HotelID, name *string, roomsTotal *int) (Hotel, error) {
	hotels := s.loadHotels(ctx)
	current, ok := findHotel(hotels, id)
	if !ok {
		return Hotel{}, &NotFoundError{Kind: "hotel", ID: string(id)}
	}

	newName := current.Name
	if name != nil {
		newName = *name
	}
	newRooms := current.RoomsTotal
	if roomsTotal != nil {
		newRooms = *roomsTotal
	}

	updated, err := NewHotel(current.ID, newName, newRooms)
	if err != nil {
		return Hotel{}, err
	}

	for i := range hotels {
		if hotels[i].ID == id {
			hotels[i] = updated
		}
	}
	s.saveHotels(ctx, hotels)
	return updated, nil
}

// DeleteHotel removes a hotel. Reservations referencing it are left in
// place, dangling.
func (s *Service) DeleteHotel(ctx context.Context, id HotelID) error {
	hotels := s.loadHotels(ctx)
	kept := hotels[:0]
	for _, h := range hotels {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(hotels) {
		return &NotFoundError{Kind: "hotel", ID: string(id)}
	}
	s.saveHotels(ctx, kept)
	return nil
}

// =============================================================================
// CUSTOMERS
// =============================================================================

// CreateCustomer validates and persists a new customer.
func (s *Service) CreateCustomer(ctx context.Context, id CustomerID, name, email string) (Customer, error) {
	customers := s.loadCustomers(ctx)
	if _, ok := findCustomer(customers, id); ok {
		return Customer{}, &DuplicateIDError{Kind: "customer", ID: string(id)}
	}

	customer, err := NewCustomer(id, name, email)
	if err != nil {
		return Customer{}, err
	}

	s.saveCustomers(ctx, append(customers, customer))
	return customer, nil
}

// GetCustomer returns a customer by id.
func (s *Service) GetCustomer(ctx context.Context, id CustomerID) (Customer, error) {
	customer, ok := findCustomer(s.loadCustomers(ctx), id)
	if !ok {
		return Customer{}, &NotFoundError{Kind: "customer", ID: string(id)}
	}
	return customer, nil
}

// ListCustomers returns all customers in stored order.
func (s *Service) ListCustomers(ctx context.Context) []Customer {
	return s.loadCustomers(ctx)
}

// ModifyCustomer rebuilds the customer from current-or-override fields and
// re-validates the whole value. Nil means "keep current".
func (s *Service) ModifyCustomer(ctx context.Context, id CustomerID, name, email *string) (Customer, error) {
	customers := s.loadCustomers(ctx)
	current, ok := findCustomer(customers, id)
	if !ok {
		return Customer{}, &NotFoundError{Kind: "customer", ID: string(id)}
	}

	newName := current.Name
	if name != nil {
		newName = *name
	}
	newEmail := current.Email
	if email != nil {
		newEmail = *email
	}

	updated, err := NewCustomer(current.ID, newName, newEmail)
	if err != nil {
		return Customer{}, err
	}

	for i := range customers {
		if customers[i].ID == id {
			customers[i] = updated
		}
	}
	s.saveCustomers(ctx, customers)
	return updated, nil
}

// DeleteCustomer removes a customer. Like hotels, no cascade to reservations.
func (s *Service) DeleteCustomer(ctx context.Context, id CustomerID) error {
	customers := s.loadCustomers(ctx)
	kept := customers[:0]
	for _, c := range customers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(customers) {
		return &NotFoundError{Kind: "customer", ID: string(id)}
	}
	s.saveCustomers(ctx, kept)
	return nil
}

// =============================================================================
// RESERVATIONS
// =============================================================================

// CreateReservation runs the admission sequence documented in the file
// header and persists the reservation on success.
func (s *Service) CreateReservation(ctx context.Context, id ReservationID, hotelID HotelID, customerID CustomerID, checkIn, checkOut Date, rooms int) (Reservation, error) {
	hotels := s.loadHotels(ctx)
	customers := s.loadCustomers(ctx)
	reservations := s.loadReservations(ctx)

	if _, ok := findReservation(reservations, id); ok {
		return Reservation{}, &DuplicateIDError{Kind: "reservation", ID: string(id)}
	}

	hotel, ok := findHotel(hotels, hotelID)
	if !ok {
		return Reservation{}, &NotFoundError{Kind: "hotel", ID: string(hotelID)}
	}

	if _, ok := findCustomer(customers, customerID); !ok {
		return Reservation{}, &NotFoundError{Kind: "customer", ID: string(customerID)}
	}

	reservation, err := NewReservation(id, hotelID, customerID, checkIn, checkOut, rooms)
	if err != nil {
		return Reservation{}, err
	}

	// Admission check against the pre-insertion set.
	available := AvailableRooms(hotel, reservations, checkIn, checkOut)
	if reservation.Rooms > available {
		s.log.WithFields(logrus.Fields{
			"reservation_id": id,
			"hotel_id":       hotelID,
			"requested":      rooms,
			"available":      available,
		}).Warn("reservation rejected: insufficient capacity")
		return Reservation{}, &CapacityError{HotelID: hotelID, Requested: reservation.Rooms, Available: available}
	}

	s.saveReservations(ctx, append(reservations, reservation))
	s.log.WithFields(logrus.Fields{
		"reservation_id": id,
		"hotel_id":       hotelID,
		"customer_id":    customerID,
		"check_in":       checkIn.String(),
		"check_out":      checkOut.String(),
		"rooms":          rooms,
	}).Info("reservation admitted")
	return reservation, nil
}

// CancelReservation hard-deletes a reservation. A second cancel of the same
// id fails NotFound.
func (s *Service) CancelReservation(ctx context.Context, id ReservationID) error {
	reservations := s.loadReservations(ctx)
	kept := reservations[:0]
	for _, r := range reservations {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(reservations) {
		return &NotFoundError{Kind: "reservation", ID: string(id)}
	}
	s.saveReservations(ctx, kept)
	s.log.WithField("reservation_id", id).Info("reservation canceled")
	return nil
}

// GetReservation returns a reservation by id. Works for dangling
// reservations whose hotel or customer was deleted.
func (s *Service) GetReservation(ctx context.Context, id ReservationID) (Reservation, error) {
	reservation, ok := findReservation(s.loadReservations(ctx), id)
	if !ok {
		return Reservation{}, &NotFoundError{Kind: "reservation", ID: string(id)}
	}
	return reservation, nil
}

// ReservationFilter narrows ListReservations. Zero values match everything.
type ReservationFilter struct {
	HotelID    HotelID
	CustomerID CustomerID
}

// ListReservations returns reservations in stored order, optionally
// filtered by hotel and/or customer.
func (s *Service) ListReservations(ctx context.Context, filter ReservationFilter) []Reservation {
	reservations := s.loadReservations(ctx)
	if filter.HotelID == "" && filter.CustomerID == "" {
		return reservations
	}
	matched := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		if filter.HotelID != "" && r.HotelID != filter.HotelID {
			continue
		}
		if filter.CustomerID != "" && r.CustomerID != filter.CustomerID {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

// =============================================================================
// AVAILABILITY QUERIES
// =============================================================================

// Availability is the answer to "how many rooms are free over this range".
// Available is clamped at zero for reporting; an over-committed hotel shows
// zero here even though the raw engine result is negative.
type Availability struct {
	HotelID    HotelID
	CheckIn    Date
	CheckOut   Date
	RoomsTotal int
	Committed  int
	Available  int
}

// Availability computes room availability for a hotel over [checkIn, checkOut).
func (s *Service) Availability(ctx context.Context, hotelID HotelID, checkIn, checkOut Date) (Availability, error) {
	if !checkOut.After(checkIn) {
		return Availability{}, &FieldError{Field: "check_out", Reason: "must be after check_in"}
	}

	hotel, ok := findHotel(s.loadHotels(ctx), hotelID)
	if !ok {
		return Availability{}, &NotFoundError{Kind: "hotel", ID: string(hotelID)}
	}

	reservations := s.loadReservations(ctx)
	committed := RoomsCommitted(reservations, hotelID, checkIn, checkOut)
	available := hotel.RoomsTotal - committed
	if available < 0 {
		s.log.WithFields(logrus.Fields{
			"hotel_id":  hotelID,
			"committed": committed,
			"total":     hotel.RoomsTotal,
		}).Warn("hotel over-committed; reporting zero availability")
		available = 0
	}

	return Availability{
		HotelID:    hotelID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		RoomsTotal: hotel.RoomsTotal,
		Committed:  committed,
		Available:  available,
	}, nil
}

// Occupancy builds the per-day occupancy report for a hotel over [from, to).
func (s *Service) Occupancy(ctx context.Context, hotelID HotelID, from, to Date) (OccupancyReport, error) {
	if !to.After(from) {
		return OccupancyReport{}, &FieldError{Field: "to", Reason: "must be after from"}
	}

	hotel, ok := findHotel(s.loadHotels(ctx), hotelID)
	if !ok {
		return OccupancyReport{}, &NotFoundError{Kind: "hotel", ID: string(hotelID)}
	}

	return BuildOccupancyReport(hotel, s.loadReservations(ctx), from, to), nil
}
