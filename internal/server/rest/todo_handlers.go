package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	todos, err := s.todos.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	todo, err := s.todos.Get(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Todo not found")
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req models.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	todo, err := s.todos.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req models.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	todo, err := s.todos.Update(r.Context(), id, userID, req)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Todo not found")
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	deleted, err := s.todos.Delete(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "Todo not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
