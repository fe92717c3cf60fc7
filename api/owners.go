package api

import (
	"encoding/json"
	"net/http"
	"time"

	"slotbook/owner"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (a *API) createOwner(w http.ResponseWriter, r *http.Request) {
	var payload owner.Owner

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ownerAccessor := owner.NewAccessor(a.db)

	created, err := ownerAccessor.CreateOwner(r.Context(), payload, time.Now().UTC())
	if err != nil {
		a.Error(w, err)
		return
	}
	a.Response(w, http.StatusCreated, created)
}

func (a *API) getOwner(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	parsedID, err := uuid.Parse(id)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid owner ID")
		return
	}

	ownerAccessor := owner.NewAccessor(a.db)
	o, err := ownerAccessor.GetOwner(r.Context(), parsedID)
	if err != nil {
		a.Error(w, err)
		return
	}
	if o == nil {
		a.Response(w, http.StatusNotFound, "owner not found")
		return
	}

	a.Response(w, http.StatusOK, o)
}

type getOwnersResponse struct {
	Owners []owner.Owner `json:"owners"`
}

func (a *API) getOwners(w http.ResponseWriter, r *http.Request) {
	ownerAccessor := owner.NewAccessor(a.db)
	owners, err := ownerAccessor.GetOwners(r.Context())
	if err != nil {
		a.Error(w, err)
		return
	}
	response := getOwnersResponse{
		Owners: owners,
	}
	a.Response(w, http.StatusOK, response)
}
