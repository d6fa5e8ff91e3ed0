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

// PostgresRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a new PostgresRepository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Todo, error) {
	query :=
		`SELECT id, title, description, completed, created_at, user_id FROM todos
		 WHERE user_id = $1
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

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.Todo, error) {
	query :=
		`SELECT id, title, description, completed, created_at, user_id FROM todos
		 WHERE id = $1 AND user_id = $2
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

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) error {
	query :=
		`INSERT INTO todos (id, title, description, completed, created_at, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.Title, todo.Description, todo.Completed, models.FormatTime(todo.CreatedAt), todo.UserID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, id, userID string, completed bool) (*models.Todo, error) {
	todo, err := r.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	query := `UPDATE todos SET completed = $1 WHERE id = $2 AND user_id = $3`
	if _, err := r.db.ExecContext(ctx, query, completed, id, userID); err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	todo.Completed = completed
	return todo, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

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

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) InsertIfAbsent(ctx context.Context, todo *models.Todo) (bool, error) {
	query :=
		`INSERT INTO todos (id, title, description, completed, created_at, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING
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
