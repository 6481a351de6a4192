package normalize

import (
	"cmp"
	"slices"

	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
)

// mergeByText joins entries with identical text, concatenating their ids.
// First-seen order is kept.
func mergeByText(entries []dex.FlavorInfo) []dex.FlavorInfo {
	index := make(map[string]int, len(entries))
	merged := make([]dex.FlavorInfo, 0, len(entries))

	for _, e := range entries {
		if i, ok := index[e.FlavorText]; ok {
			for _, id := range e.VersionGroup {
				if !slices.Contains(merged[i].VersionGroup, id) {
					merged[i].VersionGroup = append(merged[i].VersionGroup, id)
				}
			}
			continue
		}
		index[e.FlavorText] = len(merged)
		merged = append(merged, dex.FlavorInfo{
			FlavorText:   e.FlavorText,
			VersionGroup: slices.Clone(e.VersionGroup),
		})
	}
	return merged
}

// japaneseTexts keeps the "ja" entries, or the "ja-Hrkt" ones when there are
// no "ja" entries, and merges identical texts
func japaneseTexts[T any](entries []T, lang func(T) string, info func(T) dex.FlavorInfo) []dex.FlavorInfo {
	for _, code := range []string{LangJapanese, LangJapaneseKana} {
		var picked []dex.FlavorInfo
		for _, e := range entries {
			if lang(e) == code {
				picked = append(picked, info(e))
			}
		}
		if len(picked) > 0 {
			return mergeByText(picked)
		}
	}
	return []dex.FlavorInfo{}
}

// NormalizeAbilities converts ability resources into ability data with
// Japanese names and merged Japanese flavor texts keyed by version group
func NormalizeAbilities(abilities []pokeapi.Ability) []dex.AbilityData {
	out := make([]dex.AbilityData, 0, len(abilities))
	for _, a := range abilities {
		texts := japaneseTexts(a.FlavorTextEntries,
			func(e pokeapi.AbilityFlavorText) string { return e.Language.Name },
			func(e pokeapi.AbilityFlavorText) dex.FlavorInfo {
				return dex.FlavorInfo{FlavorText: e.FlavorText, VersionGroup: []int{resourceID(e.VersionGroup)}}
			},
		)
		out = append(out, dex.AbilityData{
			ID:                a.ID,
			Name:              JapaneseNameOr(a.Names, a.Name),
			FlavorTextEntries: texts,
		})
	}
	return out
}

func byID[T any](items []T, id func(T) int) map[int]T {
	m := make(map[int]T, len(items))
	for _, item := range items {
		m[id(item)] = item
	}
	return m
}

// BuildPokedexCatalog joins pokedexes with their region, version groups and
// versions. The national pokedex is left out; the result is ordered by id.
// Pokedexes whose region is unknown are dropped, as are unknown version
// groups and versions.
func BuildPokedexCatalog(regions []pokeapi.Region, pokedexes []pokeapi.Pokedex, versions []pokeapi.Version, groups []pokeapi.VersionGroup) []dex.PokedexData {
	regionByID := byID(regions, func(r pokeapi.Region) int { return r.ID })
	versionByID := byID(versions, func(v pokeapi.Version) int { return v.ID })
	groupByID := byID(groups, func(g pokeapi.VersionGroup) int { return g.ID })

	sorted := slices.Clone(pokedexes)
	slices.SortStableFunc(sorted, func(a, b pokeapi.Pokedex) int { return cmp.Compare(a.ID, b.ID) })

	catalog := make([]dex.PokedexData, 0, len(sorted))
	for _, p := range sorted {
		if p.Name == nationalPokedex || p.Region == nil {
			continue
		}
		region, ok := regionByID[resourceID(*p.Region)]
		if !ok {
			continue
		}

		var mainGene int
		if region.MainGeneration != nil {
			mainGene = resourceID(*region.MainGeneration)
		}

		vGroups := make([]dex.VersionGroup, 0, len(p.VersionGroups))
		for _, gid := range resourceIDs(p.VersionGroups) {
			group, ok := groupByID[gid]
			if !ok {
				continue
			}
			generation := resourceID(group.Generation)

			vs := make([]dex.Version, 0, len(group.Versions))
			for _, vid := range resourceIDs(group.Versions) {
				v, ok := versionByID[vid]
				if !ok {
					continue
				}
				vs = append(vs, dex.Version{
					ID:         v.ID,
					Name:       JapaneseNameOr(v.Names, v.Name),
					Generation: generation,
				})
			}
			vGroups = append(vGroups, dex.VersionGroup{ID: group.ID, Version: vs})
		}

		catalog = append(catalog, dex.PokedexData{
			ID:     p.ID,
			Name:   JapaneseNameOr(p.Names, p.Name),
			IsMain: p.IsMainSeries,
			Region: dex.Region{
				ID:       region.ID,
				Name:     JapaneseNameOr(region.Names, region.Name),
				MainGene: mainGene,
			},
			VGroup: vGroups,
		})
	}
	return catalog
}

// Versions returns the distinct versions of the given version groups found
// in catalog, ordered by id
func Versions(catalog []dex.PokedexData, groupIDs []int) []dex.Version {
	wanted := make(map[int]bool, len(groupIDs))
	for _, id := range groupIDs {
		wanted[id] = true
	}

	seen := make(map[int]bool)
	out := []dex.Version{}
	for _, p := range catalog {
		for _, g := range p.VGroup {
			if !wanted[g.ID] {
				continue
			}
			for _, v := range g.Version {
				if seen[v.ID] {
					continue
				}
				seen[v.ID] = true
				out = append(out, v)
			}
		}
	}

	slices.SortFunc(out, func(a, b dex.Version) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// allVersions indexes every version in catalog by id
func allVersions(catalog []dex.PokedexData) map[int]dex.Version {
	m := make(map[int]dex.Version)
	for _, p := range catalog {
		for _, g := range p.VGroup {
			for _, v := range g.Version {
				m[v.ID] = v
			}
		}
	}
	return m
}
