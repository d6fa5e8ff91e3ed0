// Package repomanager selects a storage backend and vends repository
// implementations bound to a database handle, plus a schema migration hook
// for the relational backends (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
)

// Backend names accepted by Open.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendFile     = "file"
)

// RepositoryManager vends backend-specific repository implementations.
// For relational backends the DBTX argument lets callers pass either the
// shared *sql.DB or an open transaction; the file backend ignores it.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
}

// Open constructs the manager for the configured backend and, for the
// relational ones, opens the database handle. The returned *sql.DB is nil
// for the file backend.
func Open(backend, dsn, dataDir string) (*sql.DB, RepositoryManager, error) {
	switch backend {
	case BackendSQLite:
		return openSQLite(dsn)
	case BackendPostgres:
		return openPostgres(dsn)
	case BackendFile:
		m, err := NewFileRepositoryManager(dataDir)
		return nil, m, err
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
