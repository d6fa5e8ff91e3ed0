package todos

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// FileRepository keeps the whole to-do collection in a single JSON file and
// rewrites it on every mutation. Like the users file store, the
// read-modify-write cycle is not atomic across processes; a mutex serializes
// access within this one. Accepted limitation of the file backend.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository returns a repository persisting to the given JSON file.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) load() []models.Todo {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return []models.Todo{}
	}

	var todos []models.Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return []models.Todo{}
	}
	return todos
}

func (r *FileRepository) save(todos []models.Todo) error {
	data, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todos: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

func (r *FileRepository) List(_ context.Context, userID string) ([]models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.Todo{}
	for _, t := range r.load() {
		if t.UserID == userID {
			result = append(result, t)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *FileRepository) Get(_ context.Context, id, userID string) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.load() {
		if t.ID == id && t.UserID == userID {
			found := t
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *FileRepository) Create(_ context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	todos := append(r.load(), *todo)
	return r.save(todos)
}

func (r *FileRepository) SetCompleted(_ context.Context, id, userID string, completed bool) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todos := r.load()
	for i, t := range todos {
		if t.ID == id && t.UserID == userID {
			todos[i].Completed = completed
			if err := r.save(todos); err != nil {
				return nil, err
			}
			found := todos[i]
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *FileRepository) Delete(_ context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todos := r.load()
	for i, t := range todos {
		if t.ID == id && t.UserID == userID {
			todos = append(todos[:i], todos[i+1:]...)
			if err := r.save(todos); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *FileRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.load())), nil
}

func (r *FileRepository) InsertIfAbsent(_ context.Context, todo *models.Todo) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todos := r.load()
	for _, t := range todos {
		if t.ID == todo.ID {
			return false, nil
		}
	}

	todos = append(todos, *todo)
	if err := r.save(todos); err != nil {
		return false, err
	}
	return true, nil
}
