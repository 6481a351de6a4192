package catalog

import (
	"context"
	"sync"

	"github.com/tildaslashalef/pokenest/internal/collection"
	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/fetch"
	"github.com/tildaslashalef/pokenest/internal/loggy"
	"github.com/tildaslashalef/pokenest/internal/normalize"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
	"github.com/tildaslashalef/pokenest/internal/ulid"
	"golang.org/x/sync/errgroup"
)

// DetailLoader builds the detail aggregate of the selected pokemon. Only the
// latest selection is live; selecting again cancels the previous one.
type DetailLoader struct {
	client     *pokeapi.Client
	controller *Controller
	refs       *References
	logger     *loggy.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewDetailLoader creates a detail loader
func NewDetailLoader(client *pokeapi.Client, controller *Controller, refs *References, logger *loggy.Logger) *DetailLoader {
	return &DetailLoader{
		client:     client,
		controller: controller,
		refs:       refs,
		logger:     logger,
	}
}

// begin cancels the current selection and starts a new one
func (d *DetailLoader) begin(ctx context.Context) (context.Context, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	d.seq++
	d.cancel = cancel
	return ctx, d.seq
}

// finish releases the selection context if seq is still current and reports
// whether it was
func (d *DetailLoader) finish(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.seq {
		return false
	}
	d.cancel()
	d.cancel = nil
	return true
}

// Select loads everything shown for pokemon id. A selection superseded by a
// later Select returns ABORTED_STOP.
func (d *DetailLoader) Select(ctx context.Context, id int) (dex.DetailAggregate, error) {
	ctx, seq := d.begin(ctx)
	ctx = loggy.WithLogger(ctx, d.logger.With("detail_id", ulid.DetailID(), "id", id))
	url := d.client.DetailURL(pokeapi.CategoryPokemon, id)

	in, err := d.load(ctx, id)
	if !d.finish(seq) {
		return dex.DetailAggregate{}, fetch.Aborted(url)
	}
	if err != nil {
		if fetch.Reportable(err) {
			loggy.FromContext(ctx).Error("Failed to load pokemon detail", "error", err)
		}
		return dex.DetailAggregate{}, err
	}

	return normalize.MergeDetailAggregate(in), nil
}

func (d *DetailLoader) load(ctx context.Context, id int) (normalize.DetailInput, error) {
	var in normalize.DetailInput

	detail, err := pokeapi.FetchOne[pokeapi.Pokemon](ctx, d.client, id, pokeapi.CategoryPokemon)
	if err != nil {
		return in, err
	}
	in.Detail = detail

	speciesID, err := collection.ExtractID(detail.Species.URL)
	if err != nil {
		return in, fetch.ParseFailure(d.client.DetailURL(pokeapi.CategoryPokemon, id), detail.Species.URL, err, "species url must end in a numeric id")
	}
	formIDs, err := collection.ExtractIDs(resourceURLs(detail.Forms)...)
	if err != nil {
		return in, fetch.ParseFailure(d.client.DetailURL(pokeapi.CategoryPokemon, id), "", err, "form urls must end in a numeric id")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		species, err := pokeapi.FetchOne[pokeapi.Species](gctx, d.client, speciesID, pokeapi.CategorySpecies)
		if err != nil {
			return err
		}
		in.Species = species

		chain, item, err := d.evolution(gctx, species)
		if err != nil {
			return err
		}
		in.Chain, in.EggItem = chain, item
		return nil
	})
	g.Go(func() (err error) {
		in.Forms, err = pokeapi.FetchMany[pokeapi.Form](gctx, d.client, formIDs, pokeapi.CategoryForm)
		return err
	})
	g.Go(func() (err error) {
		in.Abilities, err = d.refs.Abilities(gctx)
		return err
	})
	g.Go(func() (err error) {
		in.Pokedexes, err = d.refs.Pokedexes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return in, err
	}
	if err := ctx.Err(); err != nil {
		return in, fetch.From(err)
	}

	in.Records = d.controller.Records()
	record, ok := d.controller.Record(id)
	if !ok {
		var form *pokeapi.Form
		if len(in.Forms) > 0 {
			form = &in.Forms[0]
		}
		record = normalize.BuildRecord(&in.Detail, &in.Species, form, id)
		in.Records = collection.Merge(in.Records, []dex.Record{record})
	}
	in.Record = record

	return in, nil
}

// evolution fetches the evolution chain of species and its baby trigger
// item. A failed item fetch only loses the item name.
func (d *DetailLoader) evolution(ctx context.Context, species pokeapi.Species) (pokeapi.EvolutionChain, *pokeapi.Item, error) {
	if species.EvolutionChain == nil {
		return pokeapi.EvolutionChain{}, nil, nil
	}

	chain, err := pokeapi.Get[pokeapi.EvolutionChain](ctx, d.client, species.EvolutionChain.URL)
	if err != nil {
		return chain, nil, err
	}
	if chain.BabyTriggerItem == nil {
		return chain, nil, nil
	}

	item, err := pokeapi.Get[pokeapi.Item](ctx, d.client, chain.BabyTriggerItem.URL)
	if err != nil {
		if fetch.IsAborted(err) {
			return chain, nil, err
		}
		loggy.FromContext(ctx).Warn("Failed to load baby trigger item", "url", chain.BabyTriggerItem.URL, "error", err)
		return chain, nil, nil
	}
	return chain, &item, nil
}

func resourceURLs(rs []pokeapi.NamedResource) []string {
	urls := make([]string, len(rs))
	for i, r := range rs {
		urls[i] = r.URL
	}
	return urls
}
