package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// kvTable is the single table backing the store: one row per logical key.
const kvTable = "kv_state"

// PostgresStore implements Store on a Postgres connection pool. Each logical
// key maps to one row in kv_state with the value held as JSONB; a Set is a
// single upsert, so the row always holds either the prior or the fully
// updated document.
type PostgresStore struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewPostgresStore creates a PostgresStore and ensures the backing table
// exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	s := &PostgresStore{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}

	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure kv_state schema: %w", err)
	}

	return s, nil
}

// ensureSchema creates the kv_state table if it does not exist. The schema is
// a single table, so a full migration runner is not carried for it.
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv_state (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

// Get decodes the value stored under key into dest.
func (s *PostgresStore) Get(ctx context.Context, key string, dest interface{}) error {
	sql, args, err := s.sb.Select("value").
		From(kvTable).
		Where(squirrel.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build get query: %w", err)
	}

	var raw []byte
	err = s.pool.QueryRow(ctx, sql, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("error reading key %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrSerialization, key, err)
	}
	return nil
}

// Set stores value under key, replacing any previous value.
func (s *PostgresStore) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrSerialization, key, err)
	}

	sql, args, err := s.sb.Insert(kvTable).
		Columns("key", "value").
		Values(key, raw).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error writing key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	sql, args, err := s.sb.Delete(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting key %q: %w", key, err)
	}
	return nil
}

// Ping checks database reachability.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
