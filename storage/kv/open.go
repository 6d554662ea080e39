package kv

import (
	"io"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/storage/kv/filekv"
	"github.com/trezcool/amenagement/storage/kv/memkv"
	"github.com/trezcool/amenagement/storage/kv/sqlkv"
)

const sqliteFile = "amenagement.db"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Store is an opened backend. DB is set for the SQL backends only.
type Store struct {
	core.KVStore
	io.Closer
	DB *sqlx.DB
}

// Open selects the backend named by the config and prepares it for use.
// SQL backends are migrated before being returned.
func Open(conf *core.Config) (*Store, error) {
	switch conf.Store.Backend {
	case core.BackendMemory:
		return &Store{KVStore: memkv.New(), Closer: nopCloser{}}, nil

	case core.BackendFile:
		fs, err := filekv.Open(conf.Store.Path)
		if err != nil {
			return nil, err
		}
		return &Store{KVStore: fs, Closer: nopCloser{}}, nil

	case core.BackendSQLite, core.BackendPostgres:
		db, err := OpenDB(conf)
		if err != nil {
			return nil, err
		}
		if err = sqlkv.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Store{KVStore: sqlkv.New(db), Closer: db, DB: db}, nil

	default:
		return nil, errors.Errorf("unknown store backend %q", conf.Store.Backend)
	}
}

// OpenDB connects to the SQL database of the configured backend without migrating it.
func OpenDB(conf *core.Config) (*sqlx.DB, error) {
	switch conf.Store.Backend {
	case core.BackendSQLite:
		if err := os.MkdirAll(conf.Store.Path, 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating %s", conf.Store.Path)
		}
		return sqlkv.Open(sqlkv.DriverSQLite, filepath.Join(conf.Store.Path, sqliteFile))
	case core.BackendPostgres:
		return sqlkv.Open(sqlkv.DriverPostgres, conf.Store.DSN)
	default:
		return nil, errors.Errorf("store backend %q is not SQL", conf.Store.Backend)
	}
}
