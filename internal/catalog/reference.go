package catalog

import (
	"context"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/tildaslashalef/pokenest/internal/collection"
	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/fetch"
	"github.com/tildaslashalef/pokenest/internal/loggy"
	"github.com/tildaslashalef/pokenest/internal/normalize"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
	"github.com/tildaslashalef/pokenest/internal/storage"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// References loads the ability and pokedex reference collections. Each is
// loaded at most once per process, from the cache when its count is current.
type References struct {
	client     *pokeapi.Client
	adapter    *storage.Adapter
	retries    int
	newBackOff func() backoff.BackOff
	logger     *loggy.Logger

	sf        singleflight.Group
	mu        sync.RWMutex
	abilities []dex.AbilityData
	pokedexes []dex.PokedexData
}

// NewReferences creates a reference loader. Failed loads are retried up to
// retries times with exponential backoff.
func NewReferences(client *pokeapi.Client, adapter *storage.Adapter, retries int, logger *loggy.Logger) *References {
	return &References{
		client:     client,
		adapter:    adapter,
		retries:    retries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		logger:     logger,
	}
}

// referenceSpec describes how one reference collection is cached and built
type referenceSpec[T any] struct {
	key       string
	countKey  string
	countList string
	build     func(ctx context.Context, list pokeapi.ListResponse) ([]T, error)
}

// Abilities returns every ability with its Japanese name and texts
func (r *References) Abilities(ctx context.Context) ([]dex.AbilityData, error) {
	if cached := r.cachedAbilities(); cached != nil {
		return cached, nil
	}

	v, err := r.shared(ctx, storage.KeyAbility, func(ctx context.Context) (interface{}, error) {
		if cached := r.cachedAbilities(); cached != nil {
			return cached, nil
		}
		abilities, err := loadReference(ctx, r, referenceSpec[dex.AbilityData]{
			key:       storage.KeyAbility,
			countKey:  storage.KeyAbilityCount,
			countList: pokeapi.CategoryAbility,
			build:     r.buildAbilities,
		})
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.abilities = abilities
		r.mu.Unlock()
		return abilities, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dex.AbilityData), nil
}

// Pokedexes returns the regional pokedex catalog
func (r *References) Pokedexes(ctx context.Context) ([]dex.PokedexData, error) {
	if cached := r.cachedPokedexes(); cached != nil {
		return cached, nil
	}

	v, err := r.shared(ctx, storage.KeyPokedex, func(ctx context.Context) (interface{}, error) {
		if cached := r.cachedPokedexes(); cached != nil {
			return cached, nil
		}
		pokedexes, err := loadReference(ctx, r, referenceSpec[dex.PokedexData]{
			key:       storage.KeyPokedex,
			countKey:  storage.KeyPokedexCount,
			countList: pokeapi.CategoryVersion,
			build:     r.buildPokedexes,
		})
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.pokedexes = pokedexes
		r.mu.Unlock()
		return pokedexes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dex.PokedexData), nil
}

func (r *References) cachedAbilities() []dex.AbilityData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.abilities
}

func (r *References) cachedPokedexes() []dex.PokedexData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pokedexes
}

// shared runs load once for all concurrent callers of key. The load is
// detached from any single caller, so a caller giving up only stops its
// own wait.
func (r *References) shared(ctx context.Context, key string, load func(context.Context) (interface{}, error)) (interface{}, error) {
	ch := r.sf.DoChan(key, func() (interface{}, error) {
		return load(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, fetch.From(ctx.Err())
	}
}

// loadReference serves a collection from the cache when its stored count
// equals the remote count of spec.countList, and rebuilds it otherwise.
// The whole load is retried; cancellation is never retried.
func loadReference[T any](ctx context.Context, r *References, spec referenceSpec[T]) ([]T, error) {
	logger := r.logger.With("collection", spec.key)

	var out []T
	attempt := 0
	operation := func() error {
		attempt++
		items, err := loadReferenceOnce(ctx, r, spec, logger)
		if err != nil {
			if fetch.IsAborted(err) {
				return backoff.Permanent(err)
			}
			logger.Warn("Reference load failed", "attempt", attempt, "error", err)
			return err
		}
		out = items
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(max(r.retries, 0))), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		if ctx.Err() != nil {
			return nil, fetch.From(ctx.Err())
		}
		return nil, fetch.From(err)
	}
	return out, nil
}

func loadReferenceOnce[T any](ctx context.Context, r *References, spec referenceSpec[T], logger *loggy.Logger) ([]T, error) {
	list, err := r.client.ListWithLimit(ctx, spec.countList, pokeapi.ReferenceListLimit)
	if err != nil {
		return nil, err
	}

	available := r.adapter.IsAvailable(ctx)
	if available {
		if count, ok := r.adapter.LoadCount(ctx, spec.countKey); ok && count == list.Count {
			items, err := storage.Load[T](ctx, r.adapter, spec.key)
			if err == nil && len(items) > 0 {
				logger.Debug("Using cached reference collection", "count", len(items))
				return items, nil
			}
			if err != nil {
				logger.Warn("Cached reference collection is unreadable, rebuilding", "error", err)
			}
		}
	}

	items, err := spec.build(ctx, list)
	if err != nil {
		return nil, err
	}

	if available {
		if err := storage.Save(ctx, r.adapter, spec.key, items); err != nil {
			logger.Warn("Failed to persist reference collection", "error", err)
		} else if err := r.adapter.SaveCount(ctx, spec.countKey, list.Count); err != nil {
			logger.Warn("Failed to persist reference count", "error", err)
		}
	}

	logger.Info("Built reference collection", "count", len(items))
	return items, nil
}

func (r *References) buildAbilities(ctx context.Context, list pokeapi.ListResponse) ([]dex.AbilityData, error) {
	abilities, err := fetchListed[pokeapi.Ability](ctx, r.client, pokeapi.CategoryAbility, list)
	if err != nil {
		return nil, err
	}
	return normalize.NormalizeAbilities(abilities), nil
}

// buildPokedexes joins regions, pokedexes, versions and version groups.
// versionList is the version list already fetched for the staleness check.
func (r *References) buildPokedexes(ctx context.Context, versionList pokeapi.ListResponse) ([]dex.PokedexData, error) {
	var (
		regions   []pokeapi.Region
		pokedexes []pokeapi.Pokedex
		versions  []pokeapi.Version
		groups    []pokeapi.VersionGroup
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		regions, err = fetchAll[pokeapi.Region](gctx, r.client, pokeapi.CategoryRegion)
		return err
	})
	g.Go(func() (err error) {
		pokedexes, err = fetchAll[pokeapi.Pokedex](gctx, r.client, pokeapi.CategoryPokedex)
		return err
	})
	g.Go(func() (err error) {
		versions, err = fetchListed[pokeapi.Version](gctx, r.client, pokeapi.CategoryVersion, versionList)
		return err
	})
	g.Go(func() (err error) {
		groups, err = fetchAll[pokeapi.VersionGroup](gctx, r.client, pokeapi.CategoryVersionGroup)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return normalize.BuildPokedexCatalog(regions, pokedexes, versions, groups), nil
}

// fetchAll lists a small collection and fetches every entry in it
func fetchAll[T any](ctx context.Context, client *pokeapi.Client, category string) ([]T, error) {
	list, err := client.ListWithLimit(ctx, category, pokeapi.ReferenceListLimit)
	if err != nil {
		return nil, err
	}
	return fetchListed[T](ctx, client, category, list)
}

// fetchListed fetches every entry of an already fetched list
func fetchListed[T any](ctx context.Context, client *pokeapi.Client, category string, list pokeapi.ListResponse) ([]T, error) {
	ids, err := collection.ExtractIDs(list.URLs()...)
	if err != nil {
		return nil, fetch.ParseFailure(client.ListURL(category, pokeapi.ReferenceListLimit), "", err)
	}

	items, err := pokeapi.FetchMany[T](ctx, client, ids, category)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fetch.From(err)
	}
	return items, nil
}
