package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// PostgresStore keeps snapshots in a key/value table, one row per key.
type PostgresStore struct {
	db  *sqlx.DB
	key string
}

// NewPostgresStore wraps an established database handle.
func NewPostgresStore(db *sqlx.DB, key string) *PostgresStore {
	return &PostgresStore{db: db, key: key}
}

// Init creates the snapshots table when it does not exist yet.
func (s *PostgresStore) Init(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	data       BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

// Load fetches the snapshot row for the store's key.
func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data, "SELECT data FROM snapshots WHERE key = $1", s.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot %s: %w", s.key, err)
	}
	return data, nil
}

// Save upserts the snapshot row.
func (s *PostgresStore) Save(ctx context.Context, data []byte) error {
	const query = `INSERT INTO snapshots (key, data, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, query, s.key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.key, err)
	}
	return nil
}
