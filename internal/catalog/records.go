package catalog

import (
	"context"

	"github.com/tildaslashalef/pokenest/internal/collection"
	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/fetch"
	"github.com/tildaslashalef/pokenest/internal/loggy"
	"github.com/tildaslashalef/pokenest/internal/normalize"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
)

// buildRecords fetches and normalizes the records of ids. Species and form
// failures degrade to placeholders; a cancelled context discards the chunk.
func buildRecords(ctx context.Context, client *pokeapi.Client, ids []int) ([]dex.Record, error) {
	logger := loggy.FromContext(ctx)

	details, err := pokeapi.FetchMany[pokeapi.Pokemon](ctx, client, ids, pokeapi.CategoryPokemon)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fetch.From(err)
	}

	detailByID := make(map[int]*pokeapi.Pokemon, len(details))
	var speciesIDs, formIDs []int
	for i := range details {
		d := &details[i]
		detailByID[d.ID] = d
		if id, err := collection.ExtractID(d.Species.URL); err == nil {
			speciesIDs = appendUnique(speciesIDs, id)
		}
		if len(d.Forms) > 0 {
			if id, err := collection.ExtractID(d.Forms[0].URL); err == nil {
				formIDs = appendUnique(formIDs, id)
			}
		}
	}

	species, err := pokeapi.FetchMany[pokeapi.Species](ctx, client, speciesIDs, pokeapi.CategorySpecies)
	if err != nil {
		if fetch.IsAborted(err) {
			return nil, err
		}
		logger.Warn("Species fetch failed, using placeholders", "ids", speciesIDs, "error", err)
		species = make([]pokeapi.Species, 0, len(speciesIDs))
		for _, id := range speciesIDs {
			species = append(species, normalize.NullSpecies(id))
		}
	}

	forms, err := pokeapi.FetchMany[pokeapi.Form](ctx, client, formIDs, pokeapi.CategoryForm)
	if err != nil {
		if fetch.IsAborted(err) {
			return nil, err
		}
		logger.Warn("Form fetch failed, continuing without forms", "ids", formIDs, "error", err)
		forms = nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fetch.From(err)
	}

	speciesByID := make(map[int]*pokeapi.Species, len(species))
	for i := range species {
		speciesByID[species[i].ID] = &species[i]
	}
	formByID := make(map[int]*pokeapi.Form, len(forms))
	for i := range forms {
		formByID[forms[i].ID] = &forms[i]
	}

	records := make([]dex.Record, 0, len(ids))
	for _, id := range ids {
		detail := detailByID[id]

		var (
			s *pokeapi.Species
			f *pokeapi.Form
		)
		if detail != nil {
			if sid, err := collection.ExtractID(detail.Species.URL); err == nil {
				s = speciesByID[sid]
			}
			if len(detail.Forms) > 0 {
				if fid, err := collection.ExtractID(detail.Forms[0].URL); err == nil {
					f = formByID[fid]
				}
			}
		}

		records = append(records, normalize.BuildRecord(detail, s, f, id))
	}

	logger.Debug("Built records", "requested", len(ids), "details", len(details), "species", len(species), "forms", len(forms))
	return records, nil
}

func appendUnique(ids []int, id int) []int {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// chunk splits ids into consecutive slices of at most size ids
func chunk(ids []int, size int) [][]int {
	if size <= 0 {
		size = 1
	}
	var chunks [][]int
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
