// Package collection persists ordered lists of records under a single store key.
package collection

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("a record with this identity already exists")
	ErrIdentityChanged = errors.New("record identity cannot change")
	ErrMissingIdentity = errors.New("record identity is empty")
)

// Mutation ops reported to an Observer.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpReset  = "reset"
)

// Observer is notified after every persisted mutation.
type Observer interface {
	ObserveMutation(collection, op string)
}

type Option func(*options)

type options struct {
	logger   core.Logger
	observer Observer
}

func WithLogger(logger core.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithObserver(observer Observer) Option {
	return func(o *options) { o.observer = observer }
}

// Collection is a list of T persisted under one key, in insertion order.
// Every call reads the persisted list first, so concurrent writers sharing the store are observed.
type Collection[T any] struct {
	mu       sync.Mutex
	store    core.KVStore
	key      string
	seed     []T
	identity func(T) string
	opts     options
}

// New returns a Collection stored under key. seed is written the first time the key is read
// and whenever the persisted value turns out to be unreadable.
func New[T any](store core.KVStore, key string, seed []T, identity func(T) string, opts ...Option) *Collection[T] {
	c := &Collection[T]{
		store:    store,
		key:      key,
		seed:     append(make([]T, 0, len(seed)), seed...),
		identity: identity,
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	def := append(make([]T, 0, len(c.seed)), c.seed...)
	recs, err := core.Load(ctx, c.store, c.key, def, c.opts.logger)
	if err != nil {
		return nil, err
	}
	if recs == nil { // persisted as null
		recs = []T{}
	}
	return recs, nil
}

func (c *Collection[T]) save(ctx context.Context, recs []T, op string) error {
	if err := core.Save(ctx, c.store, c.key, recs); err != nil {
		return err
	}
	if c.opts.observer != nil {
		c.opts.observer.ObserveMutation(c.key, op)
	}
	return nil
}

func (c *Collection[T]) index(recs []T, id string) int {
	for i, rec := range recs {
		if c.identity(rec) == id {
			return i
		}
	}
	return -1
}

// All returns every record in insertion order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Filter returns the records kept by keep, in insertion order.
func (c *Collection[T]) Filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	recs, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]T, 0, len(recs))
	for _, rec := range recs {
		if keep(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// Get returns the first record whose identity is id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	recs, err := c.All(ctx)
	if err != nil {
		return zero, err
	}
	if i := c.index(recs, id); i >= 0 {
		return recs[i], nil
	}
	return zero, ErrNotFound
}

// Create appends the record returned by build.
// build is given a lookup of the identities in use so it can pick a fresh one.
func (c *Collection[T]) Create(ctx context.Context, build func(taken func(id string) bool) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	recs, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	taken := func(id string) bool { return c.index(recs, id) >= 0 }

	rec, err := build(taken)
	if err != nil {
		return zero, err
	}
	id := c.identity(rec)
	if id == "" {
		return zero, ErrMissingIdentity
	}
	if taken(id) {
		return zero, ErrDuplicate
	}
	if err = c.save(ctx, append(recs, rec), OpCreate); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update replaces the record whose identity is id by apply(current), in place.
func (c *Collection[T]) Update(ctx context.Context, id string, apply func(current T) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	recs, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	i := c.index(recs, id)
	if i < 0 {
		return zero, ErrNotFound
	}

	rec, err := apply(recs[i])
	if err != nil {
		return zero, err
	}
	if c.identity(rec) != id {
		return zero, ErrIdentityChanged
	}
	recs[i] = rec
	if err = c.save(ctx, recs, OpUpdate); err != nil {
		return zero, err
	}
	return rec, nil
}

// Delete removes the record whose identity is id once confirm agrees.
// It reports false when the record does not exist or the confirmation is declined.
func (c *Collection[T]) Delete(ctx context.Context, id string, confirm Confirmer, prompt string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	recs, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	i := c.index(recs, id)
	if i < 0 {
		return false, nil
	}
	if confirm == nil || !confirm.Confirm(prompt) {
		return false, nil
	}

	kept := make([]T, 0, len(recs)-1)
	kept = append(kept, recs[:i]...)
	kept = append(kept, recs[i+1:]...)
	if err = c.save(ctx, kept, OpDelete); err != nil {
		return false, err
	}
	return true, nil
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, recs []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if recs == nil {
		recs = []T{}
	}
	return c.save(ctx, recs, OpReset)
}

// Reset restores the seed records.
func (c *Collection[T]) Reset(ctx context.Context) error {
	return c.Replace(ctx, append(make([]T, 0, len(c.seed)), c.seed...))
}
