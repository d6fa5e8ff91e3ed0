package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps domain sentinels to HTTP statuses. Anything unrecognized
// renders as a 500 with a generic body; the detail stays in the server log.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, common.ErrNoAuthHeader):
		writeMessage(w, http.StatusUnauthorized, "No authorization header")
	case errors.Is(err, common.ErrBadAuthHeader):
		writeMessage(w, http.StatusUnauthorized, "Invalid authorization header format")
	case errors.Is(err, common.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, common.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
