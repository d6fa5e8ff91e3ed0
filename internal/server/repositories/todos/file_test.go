package todos

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileRepo(t *testing.T) (*FileRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.json")
	return NewFileRepository(path), path
}

func TestFileRepository_CreateListScoped(t *testing.T) {
	r, _ := newFileRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, r.Create(ctx, testTodo("old", "u1", base)))
	require.NoError(t, r.Create(ctx, testTodo("new", "u1", base.Add(time.Minute))))
	require.NoError(t, r.Create(ctx, testTodo("foreign", "u2", base)))

	list, err := r.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestFileRepository_Get_WrongOwnerLooksAbsent(t *testing.T) {
	r, _ := newFileRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testTodo("t1", "u1", time.Now())))

	_, err := r.Get(ctx, "t1", "u2")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestFileRepository_SetCompletedAndDelete(t *testing.T) {
	r, _ := newFileRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testTodo("t1", "u1", time.Now())))

	got, err := r.SetCompleted(ctx, "t1", "u1", true)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	_, err = r.SetCompleted(ctx, "t1", "u2", false)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	deleted, err := r.Delete(ctx, "t1", "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.Delete(ctx, "t1", "u1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestFileRepository_InsertIfAbsent(t *testing.T) {
	r, _ := newFileRepo(t)
	ctx := context.Background()

	todo := testTodo("t1", "", time.Now())

	inserted, err := r.InsertIfAbsent(ctx, todo)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = r.InsertIfAbsent(ctx, todo)
	require.NoError(t, err)
	assert.False(t, inserted)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFileRepository_CorruptFile_DegradesToEmpty(t *testing.T) {
	r, path := newFileRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("[{broken"), 0o660))

	list, err := r.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
