package http

import (
	"context"
	"encoding/json"
	"net/http"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/service"
)

type RentHandler struct {
	rents service.RentService
}

func NewRentHandler(rents service.RentService) *RentHandler {
	return &RentHandler{rents: rents}
}

func (h *RentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateRentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rent, err := h.rents.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rent)
}

func (h *RentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rent id"})
		return
	}

	rent, err := h.rents.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rent)
}

func (h *RentHandler) List(w http.ResponseWriter, r *http.Request) {
	rents, err := h.rents.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rents)
}

func (h *RentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rent id"})
		return
	}

	var patch service.UpdateRentInput
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rent, err := h.rents.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rent)
}

func (h *RentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rent id"})
		return
	}

	if err := h.rents.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RentHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rents.Pickup)
}

func (h *RentHandler) EndTime(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rents.EndTime)
}

func (h *RentHandler) FlagForPickup(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rents.FlagForPickup)
}

func (h *RentHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rents.Finalize)
}

func (h *RentHandler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, int32) (*domain.Rent, error)) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rent id"})
		return
	}

	rent, err := op(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rent)
}
