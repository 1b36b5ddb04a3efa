// internal/app/store/collection/collection.go

// Package collection stores named, ordered JSON arrays ("collections") and
// gives typed read-modify-write access to them.
//
// Every collection is persisted whole: a read loads the full array and a
// write replaces it. Writers to the same collection are serialized by a
// per-collection mutex held by the DB, and backends replace data atomically,
// so concurrent updates never lose records. The mutex is process-local:
// only one process may write a given backend.
package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Backend persists raw collection payloads.
//
// Load returns (nil, nil) when the collection has never been written.
// Save must replace the stored payload atomically.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Ping(ctx context.Context) error
	Kind() string
}

// DB hands out collections over one backend and owns their write locks.
type DB struct {
	backend Backend

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDB creates a DB over backend.
func NewDB(backend Backend) *DB {
	return &DB{
		backend: backend,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Backend returns the underlying backend.
func (db *DB) Backend() Backend {
	return db.backend
}

// Ping checks that the backend is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.backend.Ping(ctx)
}

func (db *DB) lock(name string) *sync.Mutex {
	db.mu.Lock()
	defer db.mu.Unlock()
	l, ok := db.locks[name]
	if !ok {
		l = &sync.Mutex{}
		db.locks[name] = l
	}
	return l
}

// Collection is a typed view of one named collection.
type Collection[T any] struct {
	db   *DB
	name string
}

// Open returns the collection called name with records of type T.
func Open[T any](db *DB, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// All returns every record in stored order. A collection that was never
// written yields an empty slice.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

// Replace overwrites the collection with records.
func (c *Collection[T]) Replace(ctx context.Context, records []T) error {
	l := c.db.lock(c.name)
	l.Lock()
	defer l.Unlock()
	return c.save(ctx, records)
}

// Update loads the collection, passes it to fn and saves what fn returns.
// It holds the collection's write lock for the whole cycle. If fn returns
// an error nothing is written and the error is returned unchanged.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	l := c.db.lock(c.name)
	l.Lock()
	defer l.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	out, err := fn(records)
	if err != nil {
		return err
	}
	return c.save(ctx, out)
}

// Count returns the number of records.
func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	records, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.db.backend.Load(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.name, err)
	}
	records := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.db.backend.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}
