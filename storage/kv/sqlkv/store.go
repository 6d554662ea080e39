package sqlkv

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
)

const (
	getQuery = `SELECT value FROM kv_entries WHERE key = ?`
	setQuery = `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// Store keeps values in the kv_entries table.
type Store struct {
	db *sqlx.DB
}

var _ core.KVStore = (*Store)(nil)

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	if err := s.db.GetContext(ctx, &value, s.db.Rebind(getQuery), key); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "selecting %q", key)
	}
	return []byte(value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(setQuery), key, string(value), core.NowFunc().UTC())
	return errors.Wrapf(err, "upserting %q", key)
}
