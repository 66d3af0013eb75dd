package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Collection is the repository for one logical collection: the whole slice is
// read with Load and rewritten with SaveAll.
type Collection[T any] struct {
	kv  KV
	key string
	log *zap.Logger
}

func NewCollection[T any](kv KV, key string, log *zap.Logger) *Collection[T] {
	return &Collection[T]{kv: kv, key: key, log: log}
}

// Load returns the stored items. A missing key yields an empty slice. A value
// that does not decode is deleted and also yields an empty slice.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	items := []T{}
	ok, err := load(ctx, c.kv, c.key, &items, c.log)
	if err != nil || !ok {
		return []T{}, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveAll replaces the stored collection with items.
func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return save(ctx, c.kv, c.key, items)
}

// Document is a single JSON value stored under one key.
type Document[T any] struct {
	kv  KV
	key string
	log *zap.Logger
}

func NewDocument[T any](kv KV, key string, log *zap.Logger) *Document[T] {
	return &Document[T]{kv: kv, key: key, log: log}
}

// Load reports false when the key is absent or held a corrupt value (which is
// then cleared).
func (d *Document[T]) Load(ctx context.Context) (T, bool, error) {
	var v T
	ok, err := load(ctx, d.kv, d.key, &v, d.log)
	if err != nil || !ok {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

func (d *Document[T]) Save(ctx context.Context, v T) error {
	return save(ctx, d.kv, d.key, v)
}

func (d *Document[T]) Clear(ctx context.Context) error {
	return d.kv.Delete(ctx, d.key)
}

func load(ctx context.Context, kv KV, key string, dst any, log *zap.Logger) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn("discarding corrupt stored value", zap.String("key", key), zap.Error(err))
		if derr := kv.Delete(ctx, key); derr != nil {
			return false, fmt.Errorf("clear corrupt %s: %w", key, derr)
		}
		return false, nil
	}
	return true, nil
}

func save(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
