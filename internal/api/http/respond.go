package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/security"
	"rentaldesk-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError translates service errors into HTTP status codes. Anything not
// recognized as a domain kind is an infrastructure failure and stays opaque.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrProviderNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrRentNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrAlreadyCheckedOut),
		errors.Is(err, domain.ErrClientInactive),
		errors.Is(err, domain.ErrProviderInactive),
		errors.Is(err, domain.ErrProductInactive):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
