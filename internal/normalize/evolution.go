package normalize

import (
	"slices"

	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
)

type chainEntry struct {
	speciesID int
	isBaby    bool
	depth     int
}

// flattenChain walks the evolution tree depth-first; the root is depth 1
func flattenChain(link pokeapi.ChainLink, depth int, out []chainEntry) []chainEntry {
	if link.Species.URL != "" {
		out = append(out, chainEntry{
			speciesID: resourceID(link.Species),
			isBaby:    link.IsBaby,
			depth:     depth,
		})
	}
	for _, next := range link.EvolvesTo {
		out = flattenChain(next, depth+1, out)
	}
	return out
}

// Evolution flattens chain into nodes labelled relative to record's species.
// Baby stages come first, then stages by depth, then by species id.
func Evolution(record dex.Record, chain pokeapi.EvolutionChain, eggItem *pokeapi.Item, records []dex.Record) []dex.EvolutionNode {
	entries := flattenChain(chain.Chain, 1, nil)

	mainDepth := 0
	for _, e := range entries {
		if e.speciesID == record.SpeciesID {
			mainDepth = e.depth
			break
		}
	}

	var eggItemName string
	if eggItem != nil {
		eggItemName = JapaneseNameOr(eggItem.Names, eggItem.Name)
	}

	nodes := make([]dex.EvolutionNode, 0, len(entries))
	for _, e := range entries {
		node := dex.EvolutionNode{
			ID:     e.speciesID,
			Depth:  e.depth,
			IsBaby: e.isBaby,
		}

		switch {
		case e.speciesID == record.SpeciesID:
			node.IsMain = true
		case e.depth < mainDepth:
			node.Stage = dex.StagePre
		case e.depth > mainDepth:
			node.Stage = dex.StageNext
		default:
			node.Stage = dex.StageBranch
		}

		if e.isBaby {
			node.EggItem = eggItemName
		}

		if base, ok := lowestIDOfSpecies(records, e.speciesID); ok {
			node.Name = base.DisplayName()
			if base.Image != nil {
				node.Image = *base.Image
			}
		}
		nodes = append(nodes, node)
	}

	slices.SortStableFunc(nodes, func(a, b dex.EvolutionNode) int {
		if a.IsBaby != b.IsBaby {
			if a.IsBaby {
				return -1
			}
			return 1
		}
		if a.Depth != b.Depth {
			return a.Depth - b.Depth
		}
		return a.ID - b.ID
	})
	return nodes
}

func lowestIDOfSpecies(records []dex.Record, speciesID int) (dex.Record, bool) {
	var best dex.Record
	found := false
	for _, r := range records {
		if r.SpeciesID != speciesID {
			continue
		}
		if !found || r.ID < best.ID {
			best = r
			found = true
		}
	}
	return best, found
}
