package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/yusufkecer/fit-assistant/internal/config"
	"github.com/yusufkecer/fit-assistant/internal/logger"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Connect opens the configured local database and verifies it is reachable.
func Connect(ctx context.Context, cfg *config.Config, log *zap.Logger) (*sql.DB, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return connectMySQL(ctx, cfg.DSN(), log)
	default:
		return OpenSQLite(ctx, cfg.DSN(), log)
	}
}

// OpenSQLite opens (creating if needed) the SQLite file at path.
func OpenSQLite(ctx context.Context, path string, log *zap.Logger) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps writes serialized on the one local file.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.OrNop(log).Debug("database connection established", zap.String("driver", config.DriverSQLite), zap.String("path", path))
	return db, nil
}

func connectMySQL(ctx context.Context, dsn string, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.OrNop(log).Debug("database connection established", zap.String("driver", config.DriverMySQL))
	return db, nil
}
