package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := s.users.Register(r.Context(), req)
	if err != nil {
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "registered", "email", resp.User.Email)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := s.users.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleMe returns the authenticated account. A token whose user no longer
// resolves yields 401, not 404.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrInvalidToken)
		return
	}

	view, err := s.users.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeMessage(w, http.StatusUnauthorized, "User not found")
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// handleLogout is a stateless no-op: tokens are not revocable, the client
// simply discards its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logged out successfully")
}
