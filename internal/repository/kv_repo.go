package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yusufkecer/fit-assistant/internal/config"
)

// KV is the local key-value storage the state records are mirrored into.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SQLStore keeps records in the kv_records table of a SQLite or MySQL database.
type SQLStore struct {
	db     *sql.DB
	upsert string
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	upsert := `INSERT INTO kv_records (record_key, record_value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(record_key) DO UPDATE SET record_value = excluded.record_value, updated_at = CURRENT_TIMESTAMP`
	if driver == config.DriverMySQL {
		upsert = `INSERT INTO kv_records (record_key, record_value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON DUPLICATE KEY UPDATE record_value = VALUES(record_value), updated_at = CURRENT_TIMESTAMP`
	}
	return &SQLStore{db: db, upsert: upsert}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT record_value FROM kv_records WHERE record_key = ?`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get record %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.upsert, key, value); err != nil {
		return fmt.Errorf("failed to save record %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_records WHERE record_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete record %s: %w", key, err)
	}
	return nil
}
