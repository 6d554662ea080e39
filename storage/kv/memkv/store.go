package memkv

import (
	"context"
	"sync"

	"github.com/trezcool/amenagement/core"
)

// Store keeps values in process memory. Values are copied in and out.
type Store struct {
	sync.RWMutex
	table map[string][]byte
}

var _ core.KVStore = (*Store)(nil)

func New() *Store {
	return &Store{table: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.RLock()
	defer s.RUnlock()

	val, ok := s.table[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.Lock()
	defer s.Unlock()

	s.table[key] = append([]byte(nil), value...)
	return nil
}
