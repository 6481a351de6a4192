package pokeapi

import (
	"context"

	"github.com/tildaslashalef/pokenest/internal/fetch"
	"golang.org/x/sync/errgroup"
)

// FetchMany fetches {base}/{category}/{id} for every id with at most the
// configured number of requests in flight. Results keep the order of ids.
// Items aborted by cancellation are dropped; any other failure cancels the
// remaining requests and is returned.
func FetchMany[T any](ctx context.Context, c *Client, ids []int, category string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	results := make([]*T, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			item, err := fetch.GetJSON[T](gctx, c.fetcher, c.DetailURL(category, id))
			if err != nil {
				// Requests cut short by a failing sibling land here too;
				// Wait still reports the sibling's error.
				if fetch.IsAborted(err) {
					return nil
				}
				return err
			}
			results[i] = &item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fetch.From(err)
	}

	out := make([]T, 0, len(ids))
	for _, item := range results {
		if item != nil {
			out = append(out, *item)
		}
	}

	if len(out) < len(ids) {
		c.logger.Debug("Batch returned partial results", "category", category, "requested", len(ids), "received", len(out))
	}
	return out, nil
}

// FetchOne fetches a single detail resource. It returns ABORTED_STOP when
// the request was cancelled.
func FetchOne[T any](ctx context.Context, c *Client, id int, category string) (T, error) {
	var zero T
	items, err := FetchMany[T](ctx, c, []int{id}, category)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, fetch.Aborted(c.DetailURL(category, id))
	}
	return items[0], nil
}
