package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context, userID string) ([]models.Todo, error) {
	query :=
		`SELECT id, title, description, completed, created_at, user_id FROM todos
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := []models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id, userID string) (*models.Todo, error) {
	query :=
		`SELECT id, title, description, completed, created_at, user_id FROM todos
		 WHERE id = ? AND user_id = ?
		 `

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, todo *models.Todo) error {
	query :=
		`INSERT INTO todos (id, title, description, completed, created_at, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)
		 `

	_, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.Title, todo.Description, todo.Completed, models.FormatTime(todo.CreatedAt), todo.UserID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// SetCompleted replaces the completion flag of an owned record. The
// ownership check and the update target the same (id, user_id) pair, so a
// foreign record is never mutated.
func (r *SQLiteRepository) SetCompleted(ctx context.Context, id, userID string, completed bool) (*models.Todo, error) {
	todo, err := r.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	query := `UPDATE todos SET completed = ? WHERE id = ? AND user_id = ?`
	if _, err := r.db.ExecContext(ctx, query, completed, id, userID); err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	todo.Completed = completed
	return todo, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	query := `DELETE FROM todos WHERE id = ? AND user_id = ?`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) InsertIfAbsent(ctx context.Context, todo *models.Todo) (bool, error) {
	query :=
		`INSERT INTO todos (id, title, description, completed, created_at, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.Title, todo.Description, todo.Completed, models.FormatTime(todo.CreatedAt), todo.UserID)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	todo := &models.Todo{}
	var createdAt string

	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &createdAt, &todo.UserID)
	if err != nil {
		return nil, err
	}

	todo.CreatedAt, err = models.ParseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("error parsing created_at: %w", err)
	}

	return todo, nil
}
