// Package postgres implements the ledger substrate on PostgreSQL. Each Put
// runs as one SQL transaction that appends a history row and upserts world
// state, so a key's history stream always matches its committed versions.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"seguros/internal/ledger"
)

// Store persists ledger state in PostgreSQL.
type Store struct {
	db *sql.DB
}

// New constructs a PostgreSQL-backed substrate.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Schema creates the substrate tables. Exposed for tests and bootstrap.
const Schema = `
CREATE TABLE IF NOT EXISTS world_state (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS history (
	id        BIGSERIAL PRIMARY KEY,
	key       TEXT NOT NULL,
	tx_id     TEXT NOT NULL,
	ts        TIMESTAMPTZ NOT NULL DEFAULT now(),
	is_delete BOOLEAN NOT NULL DEFAULT FALSE,
	value     BYTEA NOT NULL
);
CREATE INDEX IF NOT EXISTS history_key_idx ON history (key, id);
CREATE TABLE IF NOT EXISTS private_data (
	collection TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, key)
);
`

// Migrate applies the substrate schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate ledger schema: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM world_state WHERE key = $1`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	defer func() { _ = tx.Rollback() }()

	txID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history (key, tx_id, value) VALUES ($1, $2, $3)`,
		key, txID, value,
	); err != nil {
		return fmt.Errorf("append history for %s: %w", key, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO world_state (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *Store) History(ctx context.Context, key string) (ledger.HistoryIterator, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tx_id, ts, is_delete, value FROM history WHERE key = $1 ORDER BY id ASC`,
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("history of %s: %w", key, err)
	}
	return &iterator{rows: rows}, nil
}

func (s *Store) GetPrivate(ctx context.Context, collection, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM private_data WHERE collection = $1 AND key = $2`,
		collection, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get private %s/%s: %w", collection, key, err)
	}
	return value, nil
}

func (s *Store) PutPrivate(ctx context.Context, collection, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO private_data (collection, key, value, updated_at) VALUES ($1, $2, $3, now())
		 ON CONFLICT (collection, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		collection, key, value,
	); err != nil {
		return fmt.Errorf("put private %s/%s: %w", collection, key, err)
	}
	return nil
}

type iterator struct {
	rows *sql.Rows
}

func (it *iterator) Next() (*ledger.KeyModification, error) {
	if !it.rows.Next() {
		if err := it.rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	var mod ledger.KeyModification
	if err := it.rows.Scan(&mod.TxID, &mod.Timestamp, &mod.IsDelete, &mod.Value); err != nil {
		return nil, err
	}
	return &mod, nil
}

func (it *iterator) Close() error {
	return it.rows.Close()
}
