package sqlkv

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/tests"
)

func openTestDB(t *testing.T) *Store {
	t.Helper()
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err = Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return New(db)
}

func TestStore(t *testing.T) {
	testutil.CheckKVStore(t, openTestDB(t))
}

func TestStore_updatedAt(t *testing.T) {
	defer func() { core.NowFunc = time.Now }()
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	core.NowFunc = func() time.Time { return at }

	s := openTestDB(t)
	ctx := context.Background()
	if err := s.Set(ctx, "students", []byte(`[]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var count int
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM kv_entries WHERE key = 'students'`); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	assert.Equal(t, 1, count)
}

func TestRunMigration(t *testing.T) {
	s := openTestDB(t)

	orig := gooseRunFunc
	defer func() { gooseRunFunc = orig }()
	var gotCmd string
	var gotArgs []string
	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		gotCmd, gotArgs = command, args
		if dir != migrationsDir {
			return fmt.Errorf("dir = %s", dir)
		}
		return nil
	}

	tests := []struct {
		name    string
		command string
		args    []string
	}{
		{name: "up", command: "up"},
		{name: "status", command: "status"},
		{name: "down-to", command: "down-to", args: []string{"0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := RunMigration(s.db, tt.command, tt.args...); err != nil {
				t.Errorf("RunMigration() unexpected error = %v", err)
			}
			assert.Equal(t, tt.command, gotCmd)
			assert.Equal(t, tt.args, gotArgs)
		})
	}

	if err := Migrate(s.db); err != nil {
		t.Errorf("Migrate() unexpected error = %v", err)
	}
	assert.Equal(t, "up", gotCmd)
}
