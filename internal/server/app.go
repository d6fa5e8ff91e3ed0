// Package server initializes and runs the main application server.
// It selects the storage backend, applies schema migrations, imports the
// legacy flat-file collection when needed and starts the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/rest"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	todoService *services.TodoService
	importer    *services.Importer
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, rm, err := repomanager.Open(cfg.StorageBackend, cfg.DatabaseDSN, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if db != nil {
		if err := rm.RunMigrations(context.Background(), db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	us := services.NewUserService(db, rm, cfg)
	ts := services.NewTodoService(db, rm)

	// The legacy import only applies when a relational backend replaces
	// the flat files.
	var importer *services.Importer
	if db != nil {
		legacyPath := filepath.Join(cfg.DataDir, repomanager.TodosFileName)
		importer = services.NewImporter(db, rm, legacyPath, logger)
	}

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		userService: us,
		todoService: ts,
		importer:    importer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewServer(app.config.RunAddr, app.logger, app.userService, app.todoService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"backend", app.config.StorageBackend, "addr", app.config.RunAddr)

	app.initSignalHandler(cancelFunc)

	if app.importer != nil {
		if _, err := app.importer.Run(ctx); err != nil {
			app.logger.Error(ctx, "legacy import failed", "error", err.Error())
		}
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err.Error())
	}
}

// Close releases the database handle, if any.
func (app *App) Close() error {
	if app.db != nil {
		return app.db.Close()
	}
	return nil
}
