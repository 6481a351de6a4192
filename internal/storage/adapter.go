package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tildaslashalef/pokenest/internal/fetch"
	"github.com/tildaslashalef/pokenest/internal/loggy"
)

// Adapter reads and writes JSON collections on top of a Store
type Adapter struct {
	store  Store
	logger *loggy.Logger
}

// NewAdapter wraps store
func NewAdapter(store Store, logger *loggy.Logger) *Adapter {
	return &Adapter{store: store, logger: logger}
}

// IsAvailable writes and removes a probe key. Any failure, including a
// panicking store, reports false.
func (a *Adapter) IsAvailable(ctx context.Context) (available bool) {
	if a == nil || a.store == nil {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("Storage probe panicked", "panic", r)
			available = false
		}
	}()

	if err := a.store.Set(ctx, probeKey, probeKey); err != nil {
		a.logger.Warn("Storage is not available", "error", err)
		return false
	}
	if err := a.store.Remove(ctx, probeKey); err != nil {
		a.logger.Warn("Storage is not available", "error", err)
		return false
	}
	return true
}

// Load decodes the collection stored under key. A missing key yields an
// empty slice; invalid content yields a PARSE_ERROR.
func Load[T any](ctx context.Context, a *Adapter, key string) ([]T, error) {
	raw, ok, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, fetch.From(fmt.Errorf("loading %s: %w", key, err))
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fetch.ParseFailure(key, raw, err, fmt.Sprintf("%s must be a JSON array", key))
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save replaces the collection stored under key
func Save[T any](ctx context.Context, a *Adapter, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fetch.From(fmt.Errorf("encoding %s: %w", key, err))
	}
	if err := a.store.Set(ctx, key, string(data)); err != nil {
		return fetch.From(fmt.Errorf("saving %s: %w", key, err))
	}
	a.logger.Debug("Saved collection", "key", key, "count", len(items))
	return nil
}

// LoadCount returns the count stored under key. Missing, unreadable or
// non-numeric values are reported as absent.
func (a *Adapter) LoadCount(ctx context.Context, key string) (int, bool) {
	raw, ok, err := a.store.Get(ctx, key)
	if err != nil {
		a.logger.Warn("Failed to read collection count", "key", key, "error", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// SaveCount stores a collection count
func (a *Adapter) SaveCount(ctx context.Context, key string, count int) error {
	if err := a.store.Set(ctx, key, strconv.Itoa(count)); err != nil {
		return fetch.From(fmt.Errorf("saving %s: %w", key, err))
	}
	return nil
}
