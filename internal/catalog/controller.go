// Package catalog keeps the local Pokédex in step with PokeAPI: it decides
// between the cache and the network, fetches the first page up front and the
// rest in the background, and serves details and reference collections.
package catalog

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/tildaslashalef/pokenest/internal/collection"
	"github.com/tildaslashalef/pokenest/internal/config"
	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/fetch"
	"github.com/tildaslashalef/pokenest/internal/loggy"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
	"github.com/tildaslashalef/pokenest/internal/storage"
	"github.com/tildaslashalef/pokenest/internal/ulid"
)

// ErrSyncInProgress is returned when Sync is called while a run is active
var ErrSyncInProgress = errors.New("sync already in progress")

// Controller owns the live record set and the sync state machine
type Controller struct {
	client    *pokeapi.Client
	adapter   *storage.Adapter
	runs      RunRepository
	pageSize  int
	chunkSize int
	logger    *loggy.Logger

	running chan struct{}
	status  *statusHub

	mu      sync.RWMutex
	records []dex.Record
}

// NewController creates a controller. runs may be nil to skip run history.
func NewController(client *pokeapi.Client, adapter *storage.Adapter, runs RunRepository, cfg config.SyncConfig, logger *loggy.Logger) *Controller {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1
	}
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1
	}

	return &Controller{
		client:    client,
		adapter:   adapter,
		runs:      runs,
		pageSize:  pageSize,
		chunkSize: chunkSize,
		logger:    logger,
		running:   make(chan struct{}, 1),
		status:    newStatusHub(),
		records:   []dex.Record{},
	}
}

// Result is what Sync hands back once the first page is ready
type Result struct {
	RunID       string
	Path        Path
	RemoteCount int
	Records     []dex.Record    // record set at the time Sync returned
	Done        <-chan struct{} // closed when the run has fully ended

	done chan struct{}
	err  error
}

func newResult(runID string) *Result {
	done := make(chan struct{})
	return &Result{RunID: runID, Done: done, done: done}
}

func (r *Result) finish(err error) {
	r.err = err
	close(r.done)
}

// Err returns the background error. It is only meaningful after Done is
// closed; cancellation is not reported.
func (r *Result) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the run ends or ctx is done
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return fetch.From(ctx.Err())
	}
}

// Status returns the current status
func (c *Controller) Status() Status {
	return c.status.get()
}

// Subscribe returns a channel receiving status updates, starting with the
// current status, and a function that ends the subscription
func (c *Controller) Subscribe() (<-chan Status, func()) {
	return c.status.subscribe()
}

// Records returns a copy of the live record set
func (c *Controller) Records() []dex.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.records)
}

// Record returns the live record with id
func (c *Controller) Record(id int) (dex.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return dex.Record{}, false
}

// LoadCached fills the live record set from the store without touching the
// network. It returns the number of records loaded.
func (c *Controller) LoadCached(ctx context.Context) (int, error) {
	records, err := storage.Load[dex.Record](ctx, c.adapter, storage.KeyPokemon)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.records = collection.Merge(c.records, records)
	n := len(c.records)
	c.mu.Unlock()
	return n, nil
}

// Sync checks the remote count against the cache and either serves the
// cache or fetches the first page of missing records. It returns once the
// first page is available; the remaining records are fetched on a
// background goroutine bound to ctx.
func (c *Controller) Sync(ctx context.Context) (*Result, error) {
	select {
	case c.running <- struct{}{}:
	default:
		return nil, ErrSyncInProgress
	}

	id := ulid.NewRunID()
	runID := id.String()
	ctx = loggy.WithRunID(loggy.WithLogger(ctx, c.logger), runID)
	logger := loggy.FromContext(ctx)

	run := &Run{ID: id, StartedAt: time.Now().UTC(), State: StateCheckingRemote}
	c.createRun(ctx, run)
	result := newResult(runID)

	c.status.update(func(s *Status) {
		*s = Status{RunID: runID, State: StateCheckingRemote, Loaded: s.Loaded}
	})

	list, err := c.client.List(ctx, pokeapi.CategoryPokemon)
	if err != nil {
		c.end(ctx, run, result, err)
		return nil, err
	}
	run.RemoteCount = list.Count
	result.RemoteCount = list.Count

	ids, err := collection.ExtractIDs(list.URLs()...)
	if err != nil {
		ferr := fetch.ParseFailure(c.client.ListURL(pokeapi.CategoryPokemon, 0), "", err, "list results must end in a numeric id")
		c.end(ctx, run, result, ferr)
		return nil, ferr
	}

	available := c.adapter.IsAvailable(ctx)
	cached, cachedCount, countOK := c.readCache(ctx, available)
	run.CachedCount = len(cached)

	if available && countOK && cachedCount == list.Count {
		logger.Info("Remote count matches cache", "count", list.Count)
		run.Path = PathCache
		result.Path = PathCache

		c.mu.Lock()
		c.records = cached
		c.mu.Unlock()

		c.status.update(func(s *Status) {
			s.State, s.Path, s.RemoteCount, s.Loaded = StateUsingCache, PathCache, list.Count, len(cached)
		})
		c.status.update(func(s *Status) { s.State = StateReady })

		run.RecordsStored = len(cached)
		result.Records = slices.Clone(cached)
		c.end(ctx, run, result, nil)
		return result, nil
	}

	run.Path = PathFetch
	result.Path = PathFetch

	missing := missingIDs(ids, cached)
	first := missing[:min(c.pageSize, len(missing))]
	rest := missing[len(first):]

	logger.Info("Fetching records", "remote", list.Count, "cached", len(cached), "missing", len(missing), "first_page", len(first))

	c.mu.Lock()
	c.records = collection.Merge(c.records, cached)
	loaded := len(c.records)
	c.mu.Unlock()

	c.status.update(func(s *Status) {
		s.State, s.Path, s.RemoteCount = StateFetchingInitial, PathFetch, list.Count
		s.Loaded, s.Pending = loaded, len(missing)
	})

	records, err := buildRecords(ctx, c.client, first)
	if err != nil {
		c.end(ctx, run, result, err)
		return nil, err
	}
	live := c.commit(ctx, available, records)
	run.RecordsStored = len(live)

	c.status.update(func(s *Status) {
		s.State, s.Loaded, s.Pending = StateReady, len(live), len(rest)
	})
	result.Records = live

	if len(rest) == 0 {
		c.end(ctx, run, result, nil)
		return result, nil
	}

	c.status.update(func(s *Status) { s.State = StateBackgroundFetching })
	go c.background(ctx, run, result, available, rest)

	return result, nil
}

// background fetches the remaining ids chunk by chunk in increasing order
func (c *Controller) background(ctx context.Context, run *Run, result *Result, available bool, ids []int) {
	logger := loggy.FromContext(ctx)
	remaining := len(ids)

	for _, ids := range chunk(ids, c.chunkSize) {
		if err := ctx.Err(); err != nil {
			c.end(ctx, run, result, fetch.From(err))
			return
		}

		records, err := buildRecords(ctx, c.client, ids)
		if err != nil {
			c.end(ctx, run, result, err)
			return
		}

		live := c.commit(ctx, available, records)
		remaining -= len(ids)
		run.RecordsStored = len(live)

		c.status.update(func(s *Status) { s.Loaded, s.Pending = len(live), remaining })
		logger.Debug("Stored chunk", "first_id", ids[0], "size", len(ids), "loaded", len(live), "pending", remaining)
	}

	c.end(ctx, run, result, nil)
}

// readCache loads the cached collection and count. Corrupt data reads as
// an empty cache.
func (c *Controller) readCache(ctx context.Context, available bool) ([]dex.Record, int, bool) {
	if !available {
		return []dex.Record{}, 0, false
	}

	logger := loggy.FromContext(ctx)
	records, err := storage.Load[dex.Record](ctx, c.adapter, storage.KeyPokemon)
	if err != nil {
		logger.Warn("Cached records are unreadable, refetching", "error", err)
		return []dex.Record{}, 0, false
	}

	count, ok := c.adapter.LoadCount(ctx, storage.KeyPokemonCount)
	return records, count, ok
}

// commit merges records into the live set and, when the store is usable,
// into the stored collection. It returns the new live set.
func (c *Controller) commit(ctx context.Context, available bool, records []dex.Record) []dex.Record {
	c.mu.Lock()
	c.records = collection.Merge(c.records, records)
	live := slices.Clone(c.records)
	c.mu.Unlock()

	if !available {
		return live
	}

	logger := loggy.FromContext(ctx)
	stored, err := storage.Load[dex.Record](ctx, c.adapter, storage.KeyPokemon)
	if err != nil {
		logger.Warn("Replacing unreadable cached records", "error", err)
		stored = nil
	}

	merged := collection.Merge(stored, records)
	if err := storage.Save(ctx, c.adapter, storage.KeyPokemon, merged); err != nil {
		logger.Warn("Failed to persist records", "error", err)
		return live
	}
	if err := c.adapter.SaveCount(ctx, storage.KeyPokemonCount, len(merged)); err != nil {
		logger.Warn("Failed to persist record count", "error", err)
	}
	return live
}

// end records the outcome of a run, publishes it and releases the run lock
func (c *Controller) end(ctx context.Context, run *Run, result *Result, err error) {
	logger := loggy.FromContext(ctx)
	cancelled := err != nil && fetch.IsAborted(err)

	state := StateIdle
	if err != nil && !cancelled {
		state = StateFailed
		logger.WithError(err).Error("Sync failed")
	} else if cancelled {
		logger.Info("Sync cancelled")
	} else {
		logger.Info("Sync finished", "path", run.Path, "records", run.RecordsStored)
	}

	now := time.Now().UTC()
	run.FinishedAt = &now
	run.State = state
	if err != nil {
		run.Error = err.Error()
	}
	c.finishRun(run)

	c.status.update(func(s *Status) {
		s.State = state
		s.Cancelled = cancelled
		if state == StateFailed {
			s.Err = err
		}
	})

	if cancelled {
		err = nil
	}
	result.finish(err)
	<-c.running
}

func (c *Controller) createRun(ctx context.Context, run *Run) {
	if c.runs == nil {
		return
	}
	if err := c.runs.CreateRun(ctx, run); err != nil {
		c.logger.Warn("Failed to record sync run", "run_id", run.ID.String(), "error", err)
	}
}

// finishRun uses a fresh context so cancelled runs are still recorded
func (c *Controller) finishRun(run *Run) {
	if c.runs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.runs.FinishRun(ctx, run); err != nil {
		c.logger.Warn("Failed to record sync run outcome", "run_id", run.ID.String(), "error", err)
	}
}

// missingIDs returns the ids with no cached record, in list order
func missingIDs(ids []int, cached []dex.Record) []int {
	have := make(map[int]bool, len(cached))
	for _, r := range cached {
		have[r.ID] = true
	}
	missing := make([]int, 0, len(ids))
	for _, id := range ids {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
