package normalize

import (
	"slices"
	"strings"

	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
)

// DefaultFormLabel names a variety that has no variant label
const DefaultFormLabel = "通常形態"

// pokemon whose English form names carry a "-sweet" suffix
const alcremieID = 869

// DetailInput is everything fetched and cached for one selected pokemon
type DetailInput struct {
	Record    dex.Record
	Detail    pokeapi.Pokemon
	Species   pokeapi.Species
	Forms     []pokeapi.Form
	Chain     pokeapi.EvolutionChain
	EggItem   *pokeapi.Item
	Pokedexes []dex.PokedexData
	Abilities []dex.AbilityData
	Records   []dex.Record
}

// MergeDetailAggregate combines the fetched resources with the cached
// reference collections
func MergeDetailAggregate(in DetailInput) dex.DetailAggregate {
	return dex.DetailAggregate{
		Record:     in.Record,
		Images:     ImageSet(in.Detail.Sprites),
		Appearance: appearance(in.Record, in.Pokedexes),
		Abilities:  abilities(in.Detail.Abilities, in.Abilities, in.Pokedexes),
		Flavors:    JapaneseFlavors(in.Species.FlavorTextEntries, in.Pokedexes),
		Forms:      forms(in.Record, in.Species.Varieties, in.Forms, in.Detail, in.Records),
		Evolution:  Evolution(in.Record, in.Chain, in.EggItem, in.Records),
	}
}

func appearance(record dex.Record, catalog []dex.PokedexData) dex.Appearance {
	out := dex.Appearance{RegionNames: []string{}}

	var groupIDs []int
	for _, p := range catalog {
		if !slices.Contains(record.Regions, p.ID) {
			continue
		}
		if !slices.Contains(out.RegionNames, p.Region.Name) {
			out.RegionNames = append(out.RegionNames, p.Region.Name)
		}
		for _, g := range p.VGroup {
			groupIDs = append(groupIDs, g.ID)
		}
	}

	out.Versions = Versions(catalog, groupIDs)
	return out
}

func abilities(slots []pokeapi.PokemonAbility, data []dex.AbilityData, catalog []dex.PokedexData) []dex.Ability {
	byAbility := byID(data, func(a dex.AbilityData) int { return a.ID })

	out := make([]dex.Ability, 0, len(slots))
	for _, slot := range slots {
		if slot.Ability == nil {
			continue
		}
		id := resourceID(*slot.Ability)
		ability := dex.Ability{ID: id, IsHidden: slot.IsHidden, Name: slot.Ability.Name, Texts: []dex.Text{}}

		if known, ok := byAbility[id]; ok {
			ability.Name = known.Name
			for _, info := range mergeByText(known.FlavorTextEntries) {
				ability.Texts = append(ability.Texts, dex.Text{
					Text:     info.FlavorText,
					Versions: Versions(catalog, info.VersionGroup),
				})
			}
		}
		out = append(out, ability)
	}
	return out
}

// JapaneseFlavors returns the Japanese pokedex descriptions with identical
// texts merged, each with the versions it appeared in
func JapaneseFlavors(entries []pokeapi.SpeciesFlavorText, catalog []dex.PokedexData) []dex.Text {
	texts := japaneseTexts(entries,
		func(e pokeapi.SpeciesFlavorText) string { return e.Language.Name },
		func(e pokeapi.SpeciesFlavorText) dex.FlavorInfo {
			return dex.FlavorInfo{FlavorText: e.FlavorText, VersionGroup: []int{resourceID(e.Version)}}
		},
	)
	versions := allVersions(catalog)

	out := make([]dex.Text, 0, len(texts))
	for _, t := range texts {
		vs := make([]dex.Version, 0, len(t.VersionGroup))
		for _, id := range t.VersionGroup {
			if v, ok := versions[id]; ok {
				vs = append(vs, v)
			}
		}
		out = append(out, dex.Text{Text: t.FlavorText, Versions: vs})
	}
	return out
}

func forms(record dex.Record, varieties []pokeapi.Variety, spriteForms []pokeapi.Form, detail pokeapi.Pokemon, records []dex.Record) dex.Forms {
	out := dex.Forms{
		Varieties: []dex.SpeciesForm{},
		Sprites:   []dex.SpriteForm{},
		IsDefault: detail.IsDefault,
	}

	if len(varieties) > 1 {
		others := make(map[int]bool, len(varieties))
		for _, v := range varieties {
			if id := resourceID(v.Pokemon); id != record.ID {
				others[id] = true
			}
		}
		for _, r := range records {
			if !others[r.ID] {
				continue
			}
			label := DefaultFormLabel
			if r.Variant != nil && *r.Variant != "" {
				label = *r.Variant
			}
			var img string
			if r.Image != nil {
				img = *r.Image
			}
			out.Varieties = append(out.Varieties, dex.SpeciesForm{ID: r.ID, FormName: label, Image: img})
		}
	}

	if len(spriteForms) > 1 {
		for _, f := range spriteForms {
			name, ok := JapaneseName(f.FormNames)
			if !ok {
				name = f.FormName
				if record.ID == alcremieID {
					name = strings.ReplaceAll(name, "-sweet", "")
				}
			}
			var img string
			if present(f.Sprites.FrontDefault) {
				img = stripPrefix(*f.Sprites.FrontDefault)
			}
			out.Sprites = append(out.Sprites, dex.SpriteForm{Order: f.FormOrder, FormName: name, Image: img})
		}
		slices.SortStableFunc(out.Sprites, func(a, b dex.SpriteForm) int { return a.Order - b.Order })
	}

	return out
}
