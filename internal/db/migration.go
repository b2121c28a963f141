package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yusufkecer/fit-assistant/internal/logger"
	"go.uber.org/zap"
)

type migration struct {
	version    string
	statements []string
}

// Both SQLite and MySQL accept these statements as written.
var migrations = []migration{
	{
		version: "000_create_kv_records",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS kv_records (
				record_key   VARCHAR(191) NOT NULL PRIMARY KEY,
				record_value LONGTEXT NOT NULL,
				updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
}

const createSchemaMigrations = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    VARCHAR(191) NOT NULL PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

// RunMigrations applies every migration not yet recorded in
// schema_migrations. Each one runs in its own transaction together with its
// bookkeeping row.
func RunMigrations(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	log = logger.OrNop(log)

	if _, err := db.ExecContext(ctx, createSchemaMigrations); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		ok, err := applyMigration(ctx, db, m)
		if err != nil {
			return err
		}
		if ok {
			applied++
			log.Info("applied migration", zap.String("version", m.version))
		}
	}
	log.Debug("schema up to date", zap.Int("applied", applied), zap.Int("known", len(migrations)))
	return nil
}

// applyMigration reports false when m was already recorded.
func applyMigration(ctx context.Context, db *sql.DB, m migration) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction for %s: %w", m.version, err)
	}
	defer tx.Rollback()

	var seen int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.version,
	).Scan(&seen); err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", m.version, err)
	}
	if seen > 0 {
		return false, nil
	}

	for i, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, fmt.Errorf("failed to execute migration %s (statement %d): %w", m.version, i+1, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version) VALUES (?)", m.version,
	); err != nil {
		return false, fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit migration %s: %w", m.version, err)
	}
	return true, nil
}
