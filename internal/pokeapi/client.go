// Package pokeapi is the PokeAPI client: collection lists, single resources
// and bounded-concurrency batches of detail resources.
package pokeapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/tildaslashalef/pokenest/internal/config"
	"github.com/tildaslashalef/pokenest/internal/fetch"
	"github.com/tildaslashalef/pokenest/internal/loggy"
)

// Resource categories
const (
	CategoryPokemon        = "pokemon"
	CategorySpecies        = "pokemon-species"
	CategoryForm           = "pokemon-form"
	CategoryEvolutionChain = "evolution-chain"
	CategoryItem           = "item"
	CategoryAbility        = "ability"
	CategoryRegion         = "region"
	CategoryPokedex        = "pokedex"
	CategoryVersion        = "version"
	CategoryVersionGroup   = "version-group"
)

// ReferenceListLimit is the page size used for the small reference lists
const ReferenceListLimit = 500

// Client is the PokeAPI client
type Client struct {
	fetcher     fetch.Requester
	baseURL     string
	listLimit   int
	concurrency int
	logger      *loggy.Logger
}

// NewClient creates a new PokeAPI client with the provided configuration
func NewClient(cfg config.PokeAPIConfig, logger *loggy.Logger) *Client {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Client{
		fetcher:     fetch.NewFetcher(cfg),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		listLimit:   cfg.ListLimit,
		concurrency: concurrency,
		logger:      logger,
	}
}

// BaseURL returns the API root without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DetailURL returns {base}/{category}/{id}
func (c *Client) DetailURL(category string, id int) string {
	return fmt.Sprintf("%s/%s/%d", c.baseURL, category, id)
}

// ListURL returns the first page URL of a collection
func (c *Client) ListURL(category string, limit int) string {
	return fmt.Sprintf("%s/%s?offset=0&limit=%d", c.baseURL, category, limit)
}

// List fetches the first page of a collection using the configured list limit,
// which is large enough to cover the pokemon collection in one page
func (c *Client) List(ctx context.Context, category string) (ListResponse, error) {
	return c.ListWithLimit(ctx, category, c.listLimit)
}

// ListWithLimit fetches the first page of a collection
func (c *Client) ListWithLimit(ctx context.Context, category string, limit int) (ListResponse, error) {
	url := c.ListURL(category, limit)
	list, err := fetch.GetJSON[ListResponse](ctx, c.fetcher, url)
	if err != nil {
		return ListResponse{}, err
	}
	c.logger.Debug("Listed collection", "category", category, "count", list.Count, "results", len(list.Results))
	return list, nil
}

// Get fetches a single resource by URL
func Get[T any](ctx context.Context, c *Client, url string) (T, error) {
	return fetch.GetJSON[T](ctx, c.fetcher, url)
}
