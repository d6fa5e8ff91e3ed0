package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TodoService implements the per-user to-do operations. Every call is
// scoped by the id of the authenticated user; the repositories make a
// foreign record look exactly like a missing one.
type TodoService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewTodoService(db *sql.DB, rm repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, rm: rm}
}

// List returns the user's to-dos, newest first.
func (s *TodoService) List(ctx context.Context, userID string) ([]models.Todo, error) {
	return s.rm.Todos(s.db).List(ctx, userID)
}

// Get returns a single owned to-do or common.ErrNotFound.
func (s *TodoService) Get(ctx context.Context, id, userID string) (*models.Todo, error) {
	return s.rm.Todos(s.db).Get(ctx, id, userID)
}

// Create stamps id, creation time and the owner server-side; completed
// always starts false.
func (s *TodoService) Create(ctx context.Context, userID string, req models.CreateTodoRequest) (*models.Todo, error) {
	if req.Title == "" || req.Description == "" {
		return nil, common.NewValidationError("Title and description are required")
	}

	todo := &models.Todo{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		CreatedAt:   time.Now(),
		UserID:      userID,
	}

	if err := s.rm.Todos(s.db).Create(ctx, todo); err != nil {
		return nil, common.ErrInternal
	}

	return todo, nil
}

// Update replaces the completion flag of an owned to-do.
func (s *TodoService) Update(ctx context.Context, id, userID string, req models.UpdateTodoRequest) (*models.Todo, error) {
	return s.rm.Todos(s.db).SetCompleted(ctx, id, userID, req.Completed)
}

// Delete removes an owned to-do and reports whether anything was removed.
func (s *TodoService) Delete(ctx context.Context, id, userID string) (bool, error) {
	return s.rm.Todos(s.db).Delete(ctx, id, userID)
}
