package api

import (
	"encoding/json"
	"net/http"
	"time"

	"slotbook/booking"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type createBookingRequest struct {
	SlotID string `json:"slot_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func (a *API) createBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid slot ID")
		return
	}

	payload := booking.Booking{
		SlotID:        slotID,
		BookedByName:  req.Name,
		BookedByEmail: req.Email,
	}

	bookingAccessor := booking.NewAccessor(a.db)
	created, err := bookingAccessor.Book(r.Context(), payload, time.Now().UTC())
	if err != nil {
		a.Error(w, err)
		return
	}
	a.Response(w, http.StatusCreated, created)
}

type getBookingsResponse struct {
	Bookings []booking.OwnerBooking `json:"bookings"`
}

func (a *API) getBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid owner ID")
		return
	}

	bookingAccessor := booking.NewAccessor(a.db)
	bookings, err := bookingAccessor.BookingsForOwner(r.Context(), ownerID)
	if err != nil {
		a.Error(w, err)
		return
	}
	a.Response(w, http.StatusOK, getBookingsResponse{Bookings: bookings})
}
