package repomanager

import (
	"context"
	"database/sql"
	"path/filepath"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/filex"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
)

// File names of the flat JSON collections inside the data directory.
// TodosFileName doubles as the legacy collection picked up by the startup
// import when a relational backend is active.
const (
	UsersFileName = "users.json"
	TodosFileName = "todos.json"
)

// FileRepositoryManager vends the flat-file repository implementations.
// The repositories are constructed once and shared so their internal
// mutexes actually serialize access.
type FileRepositoryManager struct {
	users *users.FileRepository
	todos *todos.FileRepository
}

// NewFileRepositoryManager ensures the data directory exists and wires the
// JSON-file repositories inside it.
func NewFileRepositoryManager(dataDir string) (*FileRepositoryManager, error) {
	dir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return nil, err
	}

	return &FileRepositoryManager{
		users: users.NewFileRepository(filepath.Join(dir, UsersFileName)),
		todos: todos.NewFileRepository(filepath.Join(dir, TodosFileName)),
	}, nil
}

// Users returns the shared file-backed users repository. The DBTX argument
// is ignored; there is no database handle.
func (m *FileRepositoryManager) Users(_ dbx.DBTX) users.Repository {
	return m.users
}

// Todos returns the shared file-backed todos repository.
func (m *FileRepositoryManager) Todos(_ dbx.DBTX) todos.Repository {
	return m.todos
}

// RunMigrations is a no-op: the file backend has no schema.
func (m *FileRepositoryManager) RunMigrations(_ context.Context, _ *sql.DB) error {
	return nil
}
