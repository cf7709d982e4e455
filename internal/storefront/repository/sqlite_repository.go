package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zivra/storefront/internal/platform/logger"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS session_state (
    record_key   TEXT PRIMARY KEY,
    record_value TEXT NOT NULL,
    updated_at   TIMESTAMP NOT NULL
)`

type sqliteStateRepository struct {
	db *sql.DB
}

// NewSQLiteStateRepository ensures the state table exists and returns the
// default, device-local backend.
func NewSQLiteStateRepository(db *sql.DB) (StateRepository, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create session_state table: %w", err)
	}
	return &sqliteStateRepository{db: db}, nil
}

func (r *sqliteStateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT record_value FROM session_state WHERE record_key = ?`
	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		logger.Error("Load: query failed for key "+key, err, nil)
		return nil, err
	}
	return []byte(value), nil
}

func (r *sqliteStateRepository) Save(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO session_state (record_key, record_value, updated_at)
              VALUES (?, ?, ?)
              ON CONFLICT(record_key) DO UPDATE SET
              record_value = excluded.record_value,
              updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, key, string(value), time.Now())
	if err != nil {
		logger.Error("Save: exec failed for key "+key, err, nil)
		return err
	}
	return nil
}

func (r *sqliteStateRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM session_state WHERE record_key = ?`
	_, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		logger.Error("Delete: exec failed for key "+key, err, nil)
		return err
	}
	return nil
}
