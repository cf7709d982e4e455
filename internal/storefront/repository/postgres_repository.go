package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zivra/storefront/internal/platform/logger"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS session_state (
    record_key   TEXT PRIMARY KEY,
    record_value TEXT NOT NULL,
    updated_at   TIMESTAMPTZ NOT NULL
)`

type postgresStateRepository struct {
	db *sql.DB
}

// NewPostgresStateRepository is the shared-database backend, for deployments
// where the session state should outlive the host machine.
func NewPostgresStateRepository(db *sql.DB) (StateRepository, error) {
	if _, err := db.Exec(postgresSchema); err != nil {
		return nil, fmt.Errorf("failed to create session_state table: %w", err)
	}
	return &postgresStateRepository{db: db}, nil
}

func (r *postgresStateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT record_value FROM session_state WHERE record_key = $1`
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

func (r *postgresStateRepository) Save(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO session_state (record_key, record_value, updated_at)
              VALUES ($1, $2, $3)
              ON CONFLICT (record_key) DO UPDATE SET
              record_value = EXCLUDED.record_value,
              updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query, key, string(value), time.Now())
	if err != nil {
		logger.Error("Save: exec failed for key "+key, err, nil)
		return err
	}
	return nil
}

func (r *postgresStateRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM session_state WHERE record_key = $1`
	_, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		logger.Error("Delete: exec failed for key "+key, err, nil)
		return err
	}
	return nil
}

// NewStateRepository picks the backend matching the driver chosen for the
// DSN ("pgx" or "sqlite").
func NewStateRepository(db *sql.DB, driver string) (StateRepository, error) {
	if driver == "pgx" {
		return NewPostgresStateRepository(db)
	}
	return NewSQLiteStateRepository(db)
}
