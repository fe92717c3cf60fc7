package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"slotbook/faults"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type API struct {
	router *mux.Router
	db     *sql.DB
}

func NewAPI(db *sql.DB) *API {
	r := mux.NewRouter()
	r = r.PathPrefix("/api").Subrouter()
	return &API{
		router: r,
		db:     db,
	}
}

func (a *API) Router() *mux.Router {
	return a.router
}

func (a *API) Handler() http.Handler {
	// Use Gorilla's built-in logging handler
	return handlers.LoggingHandler(os.Stdout, a.router)
}

type Response struct {
	Status   int `json:"status"`
	Response any `json:"response"`
}

func (a *API) Response(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{
		Status:   status,
		Response: data,
	})
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Error maps the storage layer's sentinel errors onto HTTP status codes. A
// booking attempt that lost a race gets a distinct "slot no longer
// available" message rather than a generic failure.
func (a *API) Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, faults.ErrValidation):
		a.Response(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, faults.ErrNotFound):
		a.Response(w, http.StatusNotFound, err.Error())
	case errors.Is(err, faults.ErrSlotUnavailable):
		a.Response(w, http.StatusConflict, faults.ErrSlotUnavailable.Error())
	case errors.Is(err, faults.ErrConflict):
		a.Response(w, http.StatusConflict, err.Error())
	default:
		a.Response(w, http.StatusInternalServerError, err.Error())
	}
}

func (a *API) RegisterRoutes() {
	a.router.HandleFunc("/health", a.health).Methods(http.MethodGet)
	a.router.HandleFunc("/owners", a.createOwner).Methods(http.MethodPost)
	a.router.HandleFunc("/owners", a.getOwners).Methods(http.MethodGet)
	a.router.HandleFunc("/owners/{id}", a.getOwner).Methods(http.MethodGet)
	a.router.HandleFunc("/owners/{id}/slots", a.createSlot).Methods(http.MethodPost)
	a.router.HandleFunc("/owners/{id}/slots", a.getSlots).Methods(http.MethodGet)
	a.router.HandleFunc("/owners/{id}/slots/{slotId}", a.updateSlot).Methods(http.MethodPut)
	a.router.HandleFunc("/owners/{id}/slots/{slotId}", a.deleteSlot).Methods(http.MethodDelete)
	a.router.HandleFunc("/owners/{id}/bookings", a.getBookings).Methods(http.MethodGet)
	a.router.HandleFunc("/bookings", a.createBooking).Methods(http.MethodPost)
}
