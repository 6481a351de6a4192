package dex

// Images holds the front sprites of the first complete sprite tier
type Images struct {
	Default     string  `json:"defaultImg"`
	Female      *string `json:"femaleImg"`
	Shiny       string  `json:"shinyImg"`
	ShinyFemale *string `json:"shinyFemaleImg"`
}

// Appearance lists where a pokemon appears
type Appearance struct {
	RegionNames []string  `json:"regionNames"`
	Versions    []Version `json:"versionNames"`
}

// Text is a description and the versions it was shown in
type Text struct {
	Text     string    `json:"text"`
	Versions []Version `json:"version"`
}

// Ability is an ability of the selected pokemon
type Ability struct {
	ID       int    `json:"id"`
	IsHidden bool   `json:"is_hidden"`
	Name     string `json:"name"`
	Texts    []Text `json:"text"`
}

// SpeciesForm is another pokemon of the same species
type SpeciesForm struct {
	ID       int    `json:"id"`
	FormName string `json:"formName"`
	Image    string `json:"img"`
}

// SpriteForm is a cosmetic form of the same pokemon
type SpriteForm struct {
	Order    int    `json:"order"`
	FormName string `json:"formName"`
	Image    string `json:"img"`
}

// Forms groups the alternative forms
type Forms struct {
	Varieties []SpeciesForm `json:"variationResults"`
	Sprites   []SpriteForm  `json:"formsResults"`
	IsDefault bool          `json:"isDefault"`
}

// Evolution stage labels
const (
	StagePre    = "進化前"
	StageNext   = "進化先"
	StageBranch = "別分岐"
)

// EvolutionNode is one species in a flattened evolution chain
type EvolutionNode struct {
	ID      int    `json:"id"`
	IsMain  bool   `json:"is_main"`
	Stage   string `json:"evoForm"`
	Depth   int    `json:"level"`
	IsBaby  bool   `json:"is_baby"`
	EggItem string `json:"eggItem"`
	Name    string `json:"name"`
	Image   string `json:"img"`
}

// DetailAggregate is everything shown for one selected pokemon. It is built
// on demand and never persisted.
type DetailAggregate struct {
	Record     Record          `json:"record"`
	Images     Images          `json:"imgObj"`
	Appearance Appearance      `json:"pokedexObj"`
	Abilities  []Ability       `json:"abilityObj"`
	Flavors    []Text          `json:"flavorObj"`
	Forms      Forms           `json:"variationFormObj"`
	Evolution  []EvolutionNode `json:"evoObj"`
}
