package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupImportDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m := &repomanager.SQLiteRepositoryManager{}
	require.NoError(t, m.RunMigrations(context.Background(), db))

	return db, m
}

func writeLegacyFile(t *testing.T, todos []models.Todo) string {
	t.Helper()
	data, err := json.Marshal(todos)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, data, 0o660))
	return path
}

func legacyTodos() []models.Todo {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Todo{
		{ID: "l1", Title: "buy milk", Description: "2 liters", Completed: false, CreatedAt: base},
		{ID: "l2", Title: "call mom", Description: "sunday", Completed: true, CreatedAt: base.Add(time.Hour)},
	}
}

func TestImporter_Run_MigratesOnce(t *testing.T) {
	db, rm := setupImportDB(t)
	path := writeLegacyFile(t, legacyTodos())
	imp := NewImporter(db, rm, path, testLogger())

	result, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Migrated)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	// a second run sees a populated store and leaves it untouched
	result, err = imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Migrated)

	n, err := rm.Todos(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestImporter_Run_LegacyRecordsHaveNoOwner(t *testing.T) {
	db, rm := setupImportDB(t)
	path := writeLegacyFile(t, legacyTodos())
	imp := NewImporter(db, rm, path, testLogger())

	_, err := imp.Run(context.Background())
	require.NoError(t, err)

	// imported records carry an empty owner, so no scoped query sees them
	list, err := rm.Todos(db).List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	n, err := rm.Todos(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestImporter_Run_MissingFileIsNoOp(t *testing.T) {
	db, rm := setupImportDB(t)
	imp := NewImporter(db, rm, filepath.Join(t.TempDir(), "absent.json"), testLogger())

	result, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Migrated)
	assert.Empty(t, result.Errors)
}

func TestImporter_Run_EmptyFileIsNoOp(t *testing.T) {
	db, rm := setupImportDB(t)
	path := writeLegacyFile(t, []models.Todo{})
	imp := NewImporter(db, rm, path, testLogger())

	result, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Migrated)
	assert.Empty(t, result.Errors)
}

func TestImporter_Run_MalformedFileReportsError(t *testing.T) {
	db, rm := setupImportDB(t)
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, []byte("[{broken"), 0o660))
	imp := NewImporter(db, rm, path, testLogger())

	result, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Migrated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "failed to parse legacy file")
}

func TestImporter_Run_PopulatedStoreSkipsWithoutReadingFile(t *testing.T) {
	db, rm := setupImportDB(t)

	seed := legacyTodos()[0]
	seed.UserID = "u1"
	require.NoError(t, rm.Todos(db).Create(context.Background(), &seed))

	// path points nowhere, proving the file is never touched
	imp := NewImporter(db, rm, filepath.Join(t.TempDir(), "absent.json"), testLogger())

	result, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Migrated)
	assert.Empty(t, result.Errors)
}

func TestImporter_Run_CountFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT COUNT").WillReturnError(sql.ErrConnDone)

	imp := NewImporter(db, &repomanager.SQLiteRepositoryManager{}, "unused.json", testLogger())

	_, err = imp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counting todos")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImporter_Run_BeginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	path := writeLegacyFile(t, legacyTodos())
	imp := NewImporter(db, &repomanager.SQLiteRepositoryManager{}, path, testLogger())

	_, err = imp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImporter_Run_InsertFailureIsCollected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO todos").WillReturnError(sql.ErrConnDone)
	mock.ExpectExec("INSERT INTO todos").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	path := writeLegacyFile(t, legacyTodos())
	imp := NewImporter(db, &repomanager.SQLiteRepositoryManager{}, path, testLogger())

	result, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Migrated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "failed to migrate todo l1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
