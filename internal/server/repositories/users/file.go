package users

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// FileRepository keeps the whole user collection in a single JSON file and
// rewrites it on every mutation. The read-modify-write cycle is not atomic:
// two near-simultaneous registrations can interleave and lose one write.
// That race is an accepted limitation of the file backend for a
// single-user-at-a-time tool; the relational backends do not have it.
//
// A mutex serializes access within this process, so the race only matters
// when several processes share the file.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository returns a repository persisting to the given JSON file.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// load reads the collection. A missing file, unreadable file or malformed
// JSON all degrade to an empty collection rather than failing the request.
func (r *FileRepository) load() []models.User {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return []models.User{}
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return []models.User{}
	}
	return users
}

func (r *FileRepository) save(users []models.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

func (r *FileRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.load()

	for _, u := range users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, common.ErrEmailTaken
		}
	}

	users = append(users, *user)
	if err := r.save(users); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *FileRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.load() {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *FileRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.load() {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}
