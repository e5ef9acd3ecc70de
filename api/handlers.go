/*
handlers.go - HTTP handlers for the reservation engine

PURPOSE:
  Exposes the booking service via REST. Handlers parse HTTP input, call
  the service, and map service errors to status codes. No business logic
  lives here.

ERROR HANDLING:
  Service errors map to JSON error responses:
  - 400: validation failures, bad dates, bad request bodies
  - 404: hotel/customer/reservation not found
  - 409: duplicate id, insufficient capacity
  - 500: anything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/reservation-engine/booking"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *booking.Service
	Metrics *Metrics
}

// NewHandler creates a handler over the given service.
func NewHandler(svc *booking.Service, metrics *Metrics) *Handler {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Handler{Service: svc, Metrics: metrics}
}

// =============================================================================
// HOTEL HANDLERS
// =============================================================================

// ListHotels returns all hotels.
func (h *Handler) ListHotels(w http.ResponseWriter, r *http.Request) {
	hotels := h.Service.ListHotels(r.Context())
	dtos := make([]HotelDTO, len(hotels))
	for i, hotel := range hotels {
		dtos[i] = toHotelDTO(hotel)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHotel creates a new hotel.
func (h *Handler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	var req CreateHotelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	hotel, err := h.Service.CreateHotel(r.Context(), booking.HotelID(req.ID), req.Name, req.RoomsTotal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHotelDTO(hotel))
}

// GetHotel returns a single hotel.
func (h *Handler) GetHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Service.GetHotel(r.Context(), booking.HotelID(chi.URLParam(r, "id")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelDTO(hotel))
}

// ModifyHotel updates a hotel's name and/or room total.
func (h *Handler) ModifyHotel(w http.ResponseWriter, r *http.Request) {
	var req ModifyHotelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	hotel, err := h.Service.ModifyHotel(r.Context(), booking.HotelID(chi.URLParam(r, "id")), req.Name, req.RoomsTotal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelDTO(hotel))
}

// DeleteHotel removes a hotel. Its reservations are left dangling.
func (h *Handler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteHotel(r.Context(), booking.HotelID(chi.URLParam(r, "id"))); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAvailability answers ?check_in=YYYY-MM-DD&check_out=YYYY-MM-DD.
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	checkIn, err := booking.ParseDate(r.URL.Query().Get("check_in"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_in", err)
		return
	}
	checkOut, err := booking.ParseDate(r.URL.Query().Get("check_out"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_out", err)
		return
	}

	avail, err := h.Service.Availability(r.Context(), booking.HotelID(chi.URLParam(r, "id")), checkIn, checkOut)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AvailabilityDTO{
		HotelID:    string(avail.HotelID),
		CheckIn:    avail.CheckIn.String(),
		CheckOut:   avail.CheckOut.String(),
		RoomsTotal: avail.RoomsTotal,
		Committed:  avail.Committed,
		Available:  avail.Available,
	})
}

// GetOccupancy answers ?from=YYYY-MM-DD&to=YYYY-MM-DD with a per-day report.
func (h *Handler) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	from, err := booking.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from", err)
		return
	}
	to, err := booking.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to", err)
		return
	}

	report, err := h.Service.Occupancy(r.Context(), booking.HotelID(chi.URLParam(r, "id")), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOccupancyDTO(report))
}

// =============================================================================
// CUSTOMER HANDLERS
// =============================================================================

// ListCustomers returns all customers.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.Service.ListCustomers(r.Context())
	dtos := make([]CustomerDTO, len(customers))
	for i, c := range customers {
		dtos[i] = toCustomerDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCustomer creates a new customer.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	customer, err := h.Service.CreateCustomer(r.Context(), booking.CustomerID(req.ID), req.Name, req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerDTO(customer))
}

// GetCustomer returns a single customer.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.Service.GetCustomer(r.Context(), booking.CustomerID(chi.URLParam(r, "id")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(customer))
}

// ModifyCustomer updates a customer's name and/or email.
func (h *Handler) ModifyCustomer(w http.ResponseWriter, r *http.Request) {
	var req ModifyCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	customer, err := h.Service.ModifyCustomer(r.Context(), booking.CustomerID(chi.URLParam(r, "id")), req.Name, req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(customer))
}

// DeleteCustomer removes a customer.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCustomer(r.Context(), booking.CustomerID(chi.URLParam(r, "id"))); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RESERVATION HANDLERS
// =============================================================================

// ListReservations returns reservations, optionally filtered by
// ?hotel_id= and/or ?customer_id=.
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	filter := booking.ReservationFilter{
		HotelID:    booking.HotelID(r.URL.Query().Get("hotel_id")),
		CustomerID: booking.CustomerID(r.URL.Query().Get("customer_id")),
	}
	writeJSON(w, http.StatusOK, toReservationDTOs(h.Service.ListReservations(r.Context(), filter)))
}

// CreateReservation runs the admission check and persists on success.
// Generates a reservation id when the caller supplies none.
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	checkIn, err := booking.ParseDate(req.CheckIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_in", err)
		return
	}
	checkOut, err := booking.ParseDate(req.CheckOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_out", err)
		return
	}

	id := booking.ReservationID(req.ID)
	if id == "" {
		id = booking.ReservationID(uuid.NewString())
	}

	reservation, err := h.Service.CreateReservation(r.Context(), id,
		booking.HotelID(req.HotelID), booking.CustomerID(req.CustomerID),
		checkIn, checkOut, req.Rooms)
	if err != nil {
		h.Metrics.RecordRejection(err)
		writeServiceError(w, err)
		return
	}

	h.Metrics.RecordAdmission()
	writeJSON(w, http.StatusCreated, toReservationDTO(reservation))
}

// GetReservation returns a single reservation.
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.Service.GetReservation(r.Context(), booking.ReservationID(chi.URLParam(r, "id")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(reservation))
}

// CancelReservation hard-deletes a reservation.
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.CancelReservation(r.Context(), booking.ReservationID(chi.URLParam(r, "id"))); err != nil {
		writeServiceError(w, err)
		return
	}
	h.Metrics.RecordCancel()
	w.WriteHeader(http.StatusNoContent)
}

// Health is a liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps booking errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		status = http.StatusInternalServerError
		code   = "internal"
	)
	switch {
	case errors.Is(err, booking.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, booking.ErrValidation):
		status, code = http.StatusBadRequest, "validation"
	case errors.Is(err, booking.ErrDuplicateID):
		status, code = http.StatusConflict, "duplicate_id"
	case errors.Is(err, booking.ErrInsufficientCapacity):
		status, code = http.StatusConflict, "insufficient_capacity"
	}

	resp := ErrorResponse{Error: err.Error(), Code: code}

	// Surface the requested-vs-available detail on admission failures.
	var capErr *booking.CapacityError
	if errors.As(err, &capErr) {
		resp.Details = map[string]int{
			"requested": capErr.Requested,
			"available": capErr.Available,
		}
	}

	writeJSON(w, status, resp)
}
