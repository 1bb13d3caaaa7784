// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var _ Store = (*SQL)(nil)

// SQL persists records in the kv_record table created by db.CreateSchema.
// Queries are written with $n placeholders and rebound to ?n for sqlite.
type SQL struct {
	db     *sql.DB
	sqlite bool
}

// NewSQL wraps an open connection. dbType is "sqlite" or "postgres".
func NewSQL(db *sql.DB, dbType string) *SQL {
	return &SQL{db: db, sqlite: dbType == "sqlite"}
}

func (s *SQL) rebind(query string) string {
	if !s.sqlite {
		return query
	}
	return strings.ReplaceAll(query, "$", "?")
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT payload FROM kv_record WHERE record_key = $1
	`), key).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query record: %w", err)
	}
	return []byte(payload), nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	return s.SetMany(ctx, map[string][]byte{key: value})
}

func (s *SQL) SetMany(ctx context.Context, values map[string][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Fixed key order keeps lock acquisition consistent across writers
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	upsert := s.rebind(`
		INSERT INTO kv_record (record_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (record_key) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at
	`)

	now := time.Now().UTC().UnixMilli()
	for _, k := range keys {
		_, err := tx.ExecContext(ctx, upsert, k, string(values[k]), now)
		if err != nil {
			return fmt.Errorf("failed to upsert %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
