// Package jsonstore persists ordered record collections as human-readable
// JSON array files, rewritten in full on every mutation.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrStorage marks durable read/write failures so transports can map them
// to an HTTP 500 without inspecting the underlying os error.
var ErrStorage = errors.New("storage error")

// Collection is a file-backed JSON array of records. Every Load reads the
// blob fresh; every Save overwrites it whole. A per-collection mutex
// serializes read-modify-write cycles so overlapping mutations cannot lose
// updates.
type Collection[T any] struct {
	path           string
	emptyOnMissing bool
	mu             sync.Mutex
}

// Option configures a Collection.
type Option[T any] func(*Collection[T])

// WithEmptyOnMissing treats a missing file as an empty collection instead of
// a storage error.
func WithEmptyOnMissing[T any]() Option[T] {
	return func(c *Collection[T]) {
		c.emptyOnMissing = true
	}
}

// Open binds a collection to its backing file. The file is not touched until
// the first Load or Save.
func Open[T any](path string, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{path: path}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Path returns the backing file path.
func (c *Collection[T]) Path() string {
	return c.path
}

// Load reads and parses the whole collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.load()
}

// Save serializes the full sequence with stable two-space indentation and
// overwrites the blob.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.save(records)
}

// Update runs a read-modify-write cycle under the collection mutex. The
// mutator receives the freshly loaded records and returns the sequence to
// persist.
func (c *Collection[T]) Update(ctx context.Context, mutate func([]T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}
	next, err := mutate(records)
	if err != nil {
		return err
	}
	return c.save(next)
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if c.emptyOnMissing && errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorage, c.path, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrStorage, c.path, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrStorage, c.path, err)
	}
	if err := os.WriteFile(c.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorage, c.path, err)
	}
	return nil
}
