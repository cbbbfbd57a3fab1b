package http

import (
	"encoding/json"
	"net/http"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/service"
)

type ProviderHandler struct {
	providers service.ProviderService
}

func NewProviderHandler(providers service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

func (h *ProviderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var provider domain.Provider
	if err := json.NewDecoder(r.Body).Decode(&provider); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.providers.Create(r.Context(), &provider); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, provider)
}

func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid provider id"})
		return
	}

	provider, err := h.providers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, provider)
}

func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		providers []domain.Provider
		err       error
	)
	if r.URL.Query().Get("active") == "true" {
		providers, err = h.providers.ListActive(r.Context())
	} else {
		providers, err = h.providers.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

func (h *ProviderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid provider id"})
		return
	}

	var patch service.UpdateProviderInput
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	provider, err := h.providers.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, provider)
}

func (h *ProviderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid provider id"})
		return
	}

	if err := h.providers.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
