// Package users persists registered accounts. Implementations exist for
// SQLite, PostgreSQL and a legacy flat JSON file; all honor the same
// contract so the services stay backend-agnostic.
package users

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Repository is the credential store contract. Email lookups are
// case-insensitive; missing records surface as common.ErrNotFound and a
// duplicate email on Create as common.ErrEmailTaken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
