package normalize

import (
	"strings"

	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
)

// Variant labels of the special categories
const (
	LabelMega  = "メガシンカ"
	LabelGmax  = "キョダイマックス"
	LabelTotem = "ぬし（アローラ）"
)

const (
	nationalPokedex = "national"
	formNameGmax    = "gmax"
	speciesPikachu  = 25
)

// eventIDs are pokemon listed after everything else
var eventIDs = map[int]bool{
	10117: true, // ash-greninja
	10159: true, // eevee-starter
}

// NullSpecies is the placeholder used when a species could not be fetched
func NullSpecies(id int) pokeapi.Species {
	return pokeapi.Species{
		ID:                id,
		Names:             []pokeapi.Name{{}},
		PokedexNumbers:    []pokeapi.PokedexNumber{},
		EggGroups:         []pokeapi.NamedResource{},
		FlavorTextEntries: []pokeapi.SpeciesFlavorText{},
		Varieties:         []pokeapi.Variety{},
	}
}

// BuildRecord derives the cached record of pokemon id. Any of the three
// resources may be nil.
func BuildRecord(detail *pokeapi.Pokemon, species *pokeapi.Species, form *pokeapi.Form, id int) dex.Record {
	r := dex.Record{
		ID:        id,
		Types:     []int{0},
		Regions:   []int{0},
		EggGroups: []int{0},
	}

	if detail != nil {
		applyDetail(&r, detail)
	}
	if species != nil {
		applySpecies(&r, species)
	}
	if form != nil {
		applyForm(&r, form)
	} else {
		applyVariantName(&r)
	}
	return r
}

func applyDetail(r *dex.Record, detail *pokeapi.Pokemon) {
	types := make([]int, 0, len(detail.Types))
	for _, t := range detail.Types {
		types = append(types, resourceID(t.Type))
	}
	if len(types) > 0 {
		r.Types = types
	}

	r.Image = DisplayImage(detail.Sprites)

	// Stored as computed historically: set when there is no shiny sprite
	if !present(detail.Sprites.FrontShiny) {
		r.GenderVariant = 1
	}

	if !detail.IsDefault {
		name := detail.Name
		r.Variant = &name
	}
	if strings.Contains(detail.Name, "totem") {
		r.SortPriority = dex.PriorityHidden
		r.Variant = strPtr(LabelTotem)
	}
	if resourceID(detail.Species) == speciesPikachu && !detail.IsDefault {
		r.SortPriority = dex.PriorityEvent
	}
	if eventIDs[detail.ID] {
		r.SortPriority = dex.PriorityEvent
	}
}

func applySpecies(r *dex.Record, species *pokeapi.Species) {
	if name, ok := JapaneseName(species.Names); ok {
		r.Name = &name
	}

	var regions []int
	for _, n := range species.PokedexNumbers {
		if n.Pokedex.Name == nationalPokedex {
			if r.Pokedex == 0 {
				r.Pokedex = n.EntryNumber
			}
			continue
		}
		if id := resourceID(n.Pokedex); id > 0 {
			regions = append(regions, id)
		}
	}
	if len(regions) > 0 {
		r.Regions = regions
	}

	r.SpeciesID = species.ID

	if eggs := resourceIDs(species.EggGroups); len(eggs) > 0 {
		r.EggGroups = eggs
	}
}

func applyForm(r *dex.Record, form *pokeapi.Form) {
	r.Generation = resourceID(form.VersionGroup)

	if r.Image == nil {
		r.Image = DisplayImage(form.Sprites)
	}

	if name, ok := JapaneseName(form.FormNames); ok && !IsOnlyAlphabet(name) {
		r.Variant = &name
	} else if name, ok := JapaneseName(form.Names); ok && !IsOnlyAlphabet(name) {
		r.Variant = &name
	}

	switch {
	case form.IsMega:
		r.SortPriority = dex.PriorityMega
		labelUnlessLocalized(r, LabelMega)
	case form.FormName == formNameGmax:
		r.SortPriority = dex.PriorityGmax
		labelUnlessLocalized(r, LabelGmax)
	}
}

// applyVariantName classifies a record without form data by its variant name
func applyVariantName(r *dex.Record) {
	variant := r.VariantLabel()
	switch {
	case strings.Contains(variant, "-mega"):
		r.SortPriority = dex.PriorityMega
		labelUnlessLocalized(r, LabelMega)
	case strings.Contains(variant, "-gmax"):
		r.SortPriority = dex.PriorityGmax
		labelUnlessLocalized(r, LabelGmax)
	}
}

func labelUnlessLocalized(r *dex.Record, label string) {
	if r.Variant == nil || IsOnlyAlphabet(*r.Variant) {
		r.Variant = strPtr(label)
	}
}

func strPtr(s string) *string {
	return &s
}
