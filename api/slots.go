package api

import (
	"encoding/json"
	"net/http"
	"time"

	"slotbook/slot"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// slotRequest is the API DTO; date is "YYYY-MM-DD", times accept "HH:MM" or
// "HH:MM:SS" and are normalized to "HH:MM:SS" before they reach storage.
type slotRequest struct {
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
}

func (req *slotRequest) toSlot(ownerID uuid.UUID) (*slot.Slot, error) {
	date, err := slot.NewDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := slot.NewTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := slot.NewTimeOfDay(req.EndTime)
	if err != nil {
		return nil, err
	}
	return &slot.Slot{
		OwnerID:     ownerID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Description: req.Description,
	}, nil
}

func (a *API) createSlot(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid owner ID")
		return
	}

	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload, err := req.toSlot(ownerID)
	if err != nil {
		a.Error(w, err)
		return
	}

	slotAccessor := slot.NewAccessor(a.db)
	created, err := slotAccessor.CreateSlot(r.Context(), *payload, time.Now().UTC())
	if err != nil {
		a.Error(w, err)
		return
	}
	a.Response(w, http.StatusCreated, created)
}

type getSlotsResponse struct {
	Slots []slot.Slot `json:"slots"`
}

func (a *API) getSlots(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid owner ID")
		return
	}

	// exclude_booked=true is the public booking view
	excludeBooked := r.URL.Query().Get("exclude_booked") == "true"

	slotAccessor := slot.NewAccessor(a.db)
	slots, err := slotAccessor.GetSlots(r.Context(), ownerID, excludeBooked)
	if err != nil {
		a.Error(w, err)
		return
	}
	a.Response(w, http.StatusOK, getSlotsResponse{Slots: slots})
}

func (a *API) updateSlot(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid owner ID")
		return
	}
	slotID, err := uuid.Parse(mux.Vars(r)["slotId"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid slot ID")
		return
	}

	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload, err := req.toSlot(ownerID)
	if err != nil {
		a.Error(w, err)
		return
	}
	payload.ID = slotID

	slotAccessor := slot.NewAccessor(a.db)
	updated, err := slotAccessor.UpdateSlot(r.Context(), *payload, time.Now().UTC())
	if err != nil {
		a.Error(w, err)
		return
	}
	a.Response(w, http.StatusOK, updated)
}

func (a *API) deleteSlot(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid owner ID")
		return
	}
	slotID, err := uuid.Parse(mux.Vars(r)["slotId"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid slot ID")
		return
	}

	slotAccessor := slot.NewAccessor(a.db)
	if err := slotAccessor.DeleteSlot(r.Context(), slotID, ownerID); err != nil {
		a.Error(w, err)
		return
	}
	// 204 carries no body, so skip the JSON envelope.
	w.WriteHeader(http.StatusNoContent)
}
