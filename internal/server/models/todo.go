package models

import "time"

// TimeLayout is the storage format for timestamps in the relational and
// file backends. Millisecond precision with a fixed width so that the text
// form sorts the same way the instants do.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Todo is a single to-do item. UserID is the owning user; legacy records
// imported from the pre-account era carry an empty UserID and are invisible
// to scoped queries.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `json:"userId,omitempty"`
}

// CreateTodoRequest is the body of POST /api/todos.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTodoRequest is the body of PATCH /api/todos/{id}. Only the
// completion flag is mutable.
type UpdateTodoRequest struct {
	Completed bool `json:"completed"`
}

// FormatTime renders t in the storage layout, normalized to UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a timestamp in the storage layout.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}
