package rest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// newTestHandler wires the full production stack, in-memory sqlite included,
// behind the real router.
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	rm := &repomanager.SQLiteRepositoryManager{}
	require.NoError(t, rm.RunMigrations(context.Background(), db))

	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	us := services.NewUserService(db, rm, cfg)
	ts := services.NewTodoService(db, rm)

	return NewServer(":0", logger, us, ts).Router()
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func registerUser(t *testing.T, h http.Handler, email string) models.AuthResponse {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Email:    email,
		Password: "secret1",
		Name:     "Test User",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[models.AuthResponse](t, rec)
}

func TestRequireAuth_HeaderMatrix(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMsg: "No authorization header"},
		{name: "no scheme", header: "sometoken", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid authorization header format"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid authorization header format"},
		{name: "extra parts", header: "Bearer a b", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid authorization header format"},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid or expired token"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/todos/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestRequireAuth_ValidTokenPasses(t *testing.T) {
	h := newTestHandler(t)
	auth := registerUser(t, h, "a@b.com")

	rec := doRequest(t, h, http.MethodGet, "/api/todos/", auth.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserIDFromContext_Absent(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)
}
