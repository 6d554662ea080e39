package filekv

import (
	"context"
	"os"
	"regexp"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
)

var keyRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Store keeps one JSON document per key, named <key>.json, on a billy.Filesystem.
type Store struct {
	fs billy.Filesystem
}

var _ core.KVStore = (*Store)(nil)

func New(fs billy.Filesystem) *Store {
	return &Store{fs: fs}
}

// Open roots the store at dir on the OS filesystem, creating dir if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}
	return New(osfs.New(dir)), nil
}

// NewInMemory is backed by memfs. For tests.
func NewInMemory() *Store {
	return New(memfs.New())
}

func fileName(key string) (string, error) {
	if !keyRegex.MatchString(key) {
		return "", errors.Errorf("invalid key %q", key)
	}
	return key + ".json", nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	name, err := fileName(key)
	if err != nil {
		return nil, err
	}
	data, err := util.ReadFile(s.fs, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return data, nil
}

// Set writes to a temporary file first so a crash never leaves a half-written document.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	name, err := fileName(key)
	if err != nil {
		return err
	}
	tmp, err := util.TempFile(s.fs, ".", "."+key+"-")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	if _, err = tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmp.Name())
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		_ = s.fs.Remove(tmp.Name())
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	return errors.Wrapf(s.fs.Rename(tmp.Name(), name), "renaming to %s", name)
}
