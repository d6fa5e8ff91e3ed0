// Package todos persists to-do items scoped by their owning user.
// A record owned by a different user is indistinguishable from a missing
// one: both come back as common.ErrNotFound.
package todos

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Repository is the to-do store contract.
//
// Count and InsertIfAbsent exist for the legacy JSON import: the importer
// checks the store is empty, then copies records with insert-if-absent
// semantics keyed by id so re-running the import never duplicates rows.
type Repository interface {
	List(ctx context.Context, userID string) ([]models.Todo, error)
	Get(ctx context.Context, id, userID string) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	SetCompleted(ctx context.Context, id, userID string, completed bool) (*models.Todo, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	Count(ctx context.Context) (int64, error)
	InsertIfAbsent(ctx context.Context, todo *models.Todo) (bool, error)
}
