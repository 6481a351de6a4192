package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tildaslashalef/pokenest/internal/config"
	"github.com/tildaslashalef/pokenest/internal/loggy"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
	"github.com/tildaslashalef/pokenest/internal/storage"
)

// fakeAPI serves a small synthetic PokeAPI. Pokemon ids 1..total exist, each
// its own species with a single form.
type fakeAPI struct {
	server *httptest.Server
	base   string
	total  int

	// hold, when set, makes matching detail requests wait for release
	hold    func(category string, id int) bool
	release chan struct{}
	once    sync.Once

	// status, when set, overrides the response status of a request;
	// id is 0 for list requests
	status func(category string, id int) int

	mu    sync.Mutex
	hits  map[string]map[int]int
	lists map[string]int
}

type fakeOption func(f *fakeAPI)

// holding makes matching detail requests wait until Release
func holding(match func(category string, id int) bool) fakeOption {
	return func(f *fakeAPI) { f.hold = match }
}

// failing overrides response statuses; return 0 to answer normally
func failing(status func(category string, id int) int) fakeOption {
	return func(f *fakeAPI) { f.status = status }
}

func newFakeAPI(t *testing.T, total int, opts ...fakeOption) *fakeAPI {
	f := &fakeAPI{
		total:   total,
		release: make(chan struct{}),
		hits:    make(map[string]map[int]int),
		lists:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	f.base = f.server.URL + "/api/v2"
	t.Cleanup(func() {
		f.Release()
		f.server.Close()
	})
	return f
}

// Release lets held requests through
func (f *fakeAPI) Release() {
	f.once.Do(func() { close(f.release) })
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v2"), "/"), "/")
	category := parts[0]

	if len(parts) == 1 {
		f.mu.Lock()
		f.lists[category]++
		f.mu.Unlock()

		if code := f.statusFor(category, 0); code != http.StatusOK {
			http.Error(w, http.StatusText(code), code)
			return
		}
		f.writeJSON(w, f.list(category))
		return
	}

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	if f.hits[category] == nil {
		f.hits[category] = make(map[int]int)
	}
	f.hits[category][id]++
	f.mu.Unlock()

	if f.hold != nil && f.hold(category, id) {
		select {
		case <-f.release:
		case <-r.Context().Done():
			return
		}
	}

	if code := f.statusFor(category, id); code != http.StatusOK {
		http.Error(w, http.StatusText(code), code)
		return
	}

	body := f.detail(category, id)
	if body == nil {
		http.NotFound(w, r)
		return
	}
	f.writeJSON(w, body)
}

func (f *fakeAPI) statusFor(category string, id int) int {
	if f.status == nil {
		return http.StatusOK
	}
	if code := f.status(category, id); code != 0 {
		return code
	}
	return http.StatusOK
}

func (f *fakeAPI) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) url(category string, id int) string {
	return fmt.Sprintf("%s/%s/%d/", f.base, category, id)
}

func (f *fakeAPI) res(category string, id int, name string) map[string]any {
	return map[string]any{"name": name, "url": f.url(category, id)}
}

func ja(name string) []map[string]any {
	return []map[string]any{{
		"name":     name,
		"language": map[string]any{"name": "ja", "url": "https://pokeapi.test/api/v2/language/11/"},
	}}
}

// sizes of the reference collections
var referenceSizes = map[string]int{
	pokeapi.CategoryAbility:      3,
	pokeapi.CategoryRegion:       1,
	pokeapi.CategoryPokedex:      2,
	pokeapi.CategoryVersion:      2,
	pokeapi.CategoryVersionGroup: 1,
}

func (f *fakeAPI) list(category string) map[string]any {
	n := f.total
	if size, ok := referenceSizes[category]; ok {
		n = size
	}

	results := make([]map[string]any, n)
	for i := range results {
		results[i] = f.res(category, i+1, fmt.Sprintf("%s-%d", category, i+1))
	}
	return map[string]any{"count": n, "results": results}
}

func (f *fakeAPI) detail(category string, id int) map[string]any {
	switch category {
	case pokeapi.CategoryPokemon:
		if id > f.total {
			return nil
		}
		return map[string]any{
			"id":         id,
			"name":       fmt.Sprintf("poke-%d", id),
			"is_default": true,
			"species":    f.res(pokeapi.CategorySpecies, id, fmt.Sprintf("poke-%d", id)),
			"forms":      []any{f.res(pokeapi.CategoryForm, id, fmt.Sprintf("poke-%d", id))},
			"types":      []any{map[string]any{"slot": 1, "type": f.res("type", 12, "grass")}},
			"abilities": []any{
				map[string]any{"ability": f.res(pokeapi.CategoryAbility, 1, "overgrow"), "is_hidden": false, "slot": 1},
			},
			"sprites": map[string]any{
				"front_default": fmt.Sprintf("https://img.test/%d.png", id),
				"front_shiny":   fmt.Sprintf("https://img.test/shiny/%d.png", id),
			},
		}
	case pokeapi.CategorySpecies:
		return map[string]any{
			"id":    id,
			"name":  fmt.Sprintf("poke-%d", id),
			"names": ja(fmt.Sprintf("ポケ%d", id)),
			"pokedex_numbers": []any{
				map[string]any{"entry_number": id, "pokedex": f.res(pokeapi.CategoryPokedex, 1, "national")},
				map[string]any{"entry_number": id, "pokedex": f.res(pokeapi.CategoryPokedex, 2, "kanto")},
			},
			"egg_groups":      []any{f.res("egg-group", 1, "monster")},
			"evolution_chain": map[string]any{"url": f.url(pokeapi.CategoryEvolutionChain, 1)},
			"flavor_text_entries": []any{
				map[string]any{"flavor_text": "せつめい", "language": ja("")[0]["language"], "version": f.res(pokeapi.CategoryVersion, 1, "red")},
			},
			"varieties": []any{map[string]any{"is_default": true, "pokemon": f.res(pokeapi.CategoryPokemon, id, "")}},
		}
	case pokeapi.CategoryForm:
		return map[string]any{
			"id":            id,
			"name":          fmt.Sprintf("poke-%d", id),
			"is_default":    true,
			"version_group": f.res(pokeapi.CategoryVersionGroup, 1, "red-blue"),
		}
	case pokeapi.CategoryEvolutionChain:
		return map[string]any{
			"id":                id,
			"baby_trigger_item": f.res(pokeapi.CategoryItem, 5, "sea-incense"),
			"chain": map[string]any{
				"is_baby": true,
				"species": f.res(pokeapi.CategorySpecies, 1, "poke-1"),
				"evolves_to": []any{map[string]any{
					"species":    f.res(pokeapi.CategorySpecies, 2, "poke-2"),
					"evolves_to": []any{},
				}},
			},
		}
	case pokeapi.CategoryItem:
		return map[string]any{"id": id, "name": "sea-incense", "names": ja("うしおのおこう")}
	case pokeapi.CategoryAbility:
		if id > referenceSizes[category] {
			return nil
		}
		return map[string]any{
			"id":    id,
			"name":  fmt.Sprintf("ability-%d", id),
			"names": ja(fmt.Sprintf("とくせい%d", id)),
			"flavor_text_entries": []any{map[string]any{
				"flavor_text":   "とくせいのせつめい",
				"language":      ja("")[0]["language"],
				"version_group": f.res(pokeapi.CategoryVersionGroup, 1, "red-blue"),
			}},
		}
	case pokeapi.CategoryRegion:
		return map[string]any{
			"id":              id,
			"name":            "kanto",
			"names":           ja("カントー"),
			"main_generation": f.res("generation", 1, "generation-i"),
		}
	case pokeapi.CategoryPokedex:
		name := "kanto"
		if id == 1 {
			name = "national"
		}
		return map[string]any{
			"id":             id,
			"name":           name,
			"is_main_series": true,
			"region":         f.res(pokeapi.CategoryRegion, 1, "kanto"),
			"version_groups": []any{f.res(pokeapi.CategoryVersionGroup, 1, "red-blue")},
		}
	case pokeapi.CategoryVersion:
		names := map[int]string{1: "赤", 2: "緑"}
		return map[string]any{
			"id":            id,
			"name":          fmt.Sprintf("version-%d", id),
			"names":         ja(names[id]),
			"version_group": f.res(pokeapi.CategoryVersionGroup, 1, "red-blue"),
		}
	case pokeapi.CategoryVersionGroup:
		return map[string]any{
			"id":         id,
			"name":       "red-blue",
			"generation": f.res("generation", 1, "generation-i"),
			"versions":   []any{f.res(pokeapi.CategoryVersion, 1, "red"), f.res(pokeapi.CategoryVersion, 2, "green")},
		}
	}
	return nil
}

// hitCount returns how many times category/id was requested
func (f *fakeAPI) hitCount(category string, id int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[category][id]
}

// detailHits returns the number of detail requests made for category
func (f *fakeAPI) detailHits(category string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.hits[category] {
		n += c
	}
	return n
}

func (f *fakeAPI) listHits(category string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists[category]
}

func (f *fakeAPI) client() *pokeapi.Client {
	return pokeapi.NewClient(config.PokeAPIConfig{
		BaseURL:             f.base,
		UserAgent:           "pokenest-test",
		Timeout:             5 * time.Second,
		Concurrency:         4,
		ListLimit:           100000,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     time.Minute,
	}, loggy.NewNoopLogger())
}

func newAdapter(store storage.Store) *storage.Adapter {
	return storage.NewAdapter(store, loggy.NewNoopLogger())
}
