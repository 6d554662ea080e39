package core

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// KVStore persists opaque values under string keys.
// Get returns ErrKeyNotFound when nothing was ever saved under key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Load decodes the JSON value saved under key.
// When the key is missing or its value cannot be decoded, def is persisted and returned instead;
// the bad value is reported to the optional logger.
func Load[T any](ctx context.Context, store KVStore, key string, def T, logger ...Logger) (T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Cause(err) != ErrKeyNotFound {
			var zero T
			return zero, errors.Wrapf(err, "reading %q", key)
		}
		return def, errors.Wrapf(Save(ctx, store, key, def), "seeding %q", key)
	}

	var val T
	if err = json.Unmarshal(raw, &val); err != nil {
		if len(logger) > 0 && logger[0] != nil {
			logger[0].Warn("corrupt value replaced by default", map[string]interface{}{"key": key}, err)
		}
		return def, errors.Wrapf(Save(ctx, store, key, def), "reseeding %q", key)
	}
	return val, nil
}

// Save encodes v as JSON under key. The write is visible to the next Load.
func Save[T any](ctx context.Context, store KVStore, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %q", key)
	}
	return errors.Wrapf(store.Set(ctx, key, raw), "writing %q", key)
}
