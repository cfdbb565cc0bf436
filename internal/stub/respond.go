package stub

import (
	"encoding/json"
	"errors"
	"net/http"

	"loanlink/internal/sentinel"
)

// errorBody matches the backend's error envelope consumed by the client.
type errorBody struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Message: message})
}

// respondStoreError maps store sentinels onto HTTP statuses.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sentinel.ErrConflict):
		respondError(w, http.StatusConflict, "an account with this email already exists")
	case errors.Is(err, sentinel.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
