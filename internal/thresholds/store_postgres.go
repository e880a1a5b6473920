package thresholds

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresFetcher reads raw threshold config from the settings table:
//
//	settings(key text primary key, value jsonb)
//
// The value is a RawConfig JSON document: per document type, optional
// urgent_days/high_days/medium_days overrides.
type PostgresFetcher struct {
	db *sql.DB
}

// NewPostgresFetcher constructs a PostgreSQL-backed settings fetcher.
func NewPostgresFetcher(db *sql.DB) *PostgresFetcher {
	return &PostgresFetcher{db: db}
}

func (f *PostgresFetcher) FetchConfig(ctx context.Context, key string) (RawConfig, error) {
	var value []byte
	err := f.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch settings row %q: %w", key, err)
	}

	var raw RawConfig
	if err := json.Unmarshal(value, &raw); err != nil {
		return nil, fmt.Errorf("decode settings row %q: %w", key, err)
	}
	return raw, nil
}
