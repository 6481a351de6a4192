// Package dex holds the normalized Pokédex data model shared by the sync
// pipeline, the store and the CLI.
package dex

// Sort priorities of special records
const (
	PriorityNormal = 0
	PriorityMega   = 11
	PriorityGmax   = 21
	PriorityHidden = 99
	PriorityEvent  = 100
)

// Record is one cached pokemon. JSON names match the stored collection format.
type Record struct {
	ID            int     `json:"id"`
	Name          *string `json:"name"`
	Types         []int   `json:"type"`
	Pokedex       int     `json:"pokedex"`
	SpeciesID     int     `json:"sp"`
	Regions       []int   `json:"region"`
	Generation    int     `json:"ge"`
	// GenderVariant is 1 when the pokemon has no shiny front sprite and 0
	// otherwise. The name is kept for the stored isGen key; it says nothing
	// about gender differences.
	GenderVariant int     `json:"isGen"`
	EggGroups     []int   `json:"egg"`
	Image         *string `json:"img"`
	Variant       *string `json:"difNm"`
	SortPriority  int     `json:"showOder"`
}

// DisplayName returns the Japanese name, or "?" when it is unknown
func (r Record) DisplayName() string {
	if r.Name == nil || *r.Name == "" {
		return "?"
	}
	return *r.Name
}

// VariantLabel returns the variant label or ""
func (r Record) VariantLabel() string {
	if r.Variant == nil {
		return ""
	}
	return *r.Variant
}

// Version is one game version, as referenced by pokedex and ability data
type Version struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Generation int    `json:"generation"`
}

// VersionGroup groups the versions released together
type VersionGroup struct {
	ID      int       `json:"id"`
	Version []Version `json:"version"`
}

// Region is the region a pokedex belongs to
type Region struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	MainGene int    `json:"mainGene"`
}

// PokedexData is one regional pokedex with its region and version groups
type PokedexData struct {
	ID     int            `json:"id"`
	Name   string         `json:"name"`
	IsMain bool           `json:"isMain"`
	Region Region         `json:"region"`
	VGroup []VersionGroup `json:"vGroup"`
}

// FlavorInfo is a flavor text and the version groups it appears in
type FlavorInfo struct {
	FlavorText   string `json:"flavor_text"`
	VersionGroup []int  `json:"version_group"`
}

// AbilityData is a normalized ability with its Japanese texts
type AbilityData struct {
	ID                int          `json:"id"`
	Name              string       `json:"name"`
	FlavorTextEntries []FlavorInfo `json:"flavor_text_entries"`
}
