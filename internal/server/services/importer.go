package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

// ImportResult reports the outcome of one import run.
type ImportResult struct {
	Migrated int
	Skipped  int
	Errors   []string
}

// Importer copies the legacy flat-file to-do collection into the relational
// store once, at startup. The whole batch runs in a single transaction;
// inserts are keyed by id with insert-if-absent semantics, so running the
// import any number of times leaves the store in the same state. Per-record
// failures are collected and reported, they never abort the batch.
//
// Legacy records predate per-user ownership and import with an empty owner,
// which makes them invisible to scoped queries.
type Importer struct {
	db         *sql.DB
	rm         repomanager.RepositoryManager
	legacyPath string
	logger     logging.Logger
}

func NewImporter(db *sql.DB, rm repomanager.RepositoryManager, legacyPath string, logger logging.Logger) *Importer {
	return &Importer{
		db:         db,
		rm:         rm,
		legacyPath: legacyPath,
		logger:     logger.With("module", "importer"),
	}
}

// Run performs the import if it is needed: the target store must be empty
// and the legacy file must exist. An absent or empty file is a no-op
// reporting zero migrated records.
func (i *Importer) Run(ctx context.Context) (*ImportResult, error) {
	result := &ImportResult{}

	count, err := i.rm.Todos(i.db).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting todos: %w", err)
	}
	if count > 0 {
		i.logger.Info(ctx, "store already populated, skipping legacy import", "count", count)
		return result, nil
	}

	data, err := os.ReadFile(i.legacyPath)
	if err != nil {
		if os.IsNotExist(err) {
			i.logger.Info(ctx, "no legacy file found, skipping import", "path", i.legacyPath)
			return result, nil
		}
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read legacy file: %v", err))
		return result, nil
	}

	var todos []models.Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to parse legacy file: %v", err))
		return result, nil
	}

	if len(todos) == 0 {
		i.logger.Info(ctx, "legacy file is empty, skipping import", "path", i.legacyPath)
		return result, nil
	}

	err = dbx.WithTx(ctx, i.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := i.rm.Todos(tx)
		for _, todo := range todos {
			todo := todo
			inserted, err := repo.InsertIfAbsent(ctx, &todo)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to migrate todo %s: %v", todo.ID, err))
				continue
			}
			if inserted {
				result.Migrated++
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import transaction: %w", err)
	}

	i.logger.Info(ctx, "legacy import complete",
		"migrated", result.Migrated, "skipped", result.Skipped, "errors", len(result.Errors))

	return result, nil
}
