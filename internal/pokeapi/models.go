package pokeapi

// NamedResource is a name and the URL of the resource it refers to
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListResponse is a page of a collection list endpoint
type ListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// URLs returns the detail URLs of the listed resources
func (l ListResponse) URLs() []string {
	urls := make([]string, len(l.Results))
	for i, r := range l.Results {
		urls[i] = r.URL
	}
	return urls
}

// Name is a localized name
type Name struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

// Pokemon is the /pokemon/{id} resource
type Pokemon struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	IsDefault bool             `json:"is_default"`
	Order     int              `json:"order"`
	Height    int              `json:"height"`
	Weight    int              `json:"weight"`
	Species   NamedResource    `json:"species"`
	Forms     []NamedResource  `json:"forms"`
	Types     []PokemonType    `json:"types"`
	Abilities []PokemonAbility `json:"abilities"`
	Sprites   Sprites          `json:"sprites"`
}

// PokemonType is one type slot
type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// PokemonAbility is one ability slot
type PokemonAbility struct {
	Ability  *NamedResource `json:"ability"`
	IsHidden bool           `json:"is_hidden"`
	Slot     int            `json:"slot"`
}

// FrontSprites are the front-facing images of one tier
type FrontSprites struct {
	FrontDefault     *string `json:"front_default"`
	FrontFemale      *string `json:"front_female"`
	FrontShiny       *string `json:"front_shiny"`
	FrontShinyFemale *string `json:"front_shiny_female"`
}

// GameSprites is the union of the image fields used by any game
type GameSprites struct {
	FrontDefault          *string `json:"front_default"`
	FrontFemale           *string `json:"front_female"`
	FrontShiny            *string `json:"front_shiny"`
	FrontShinyFemale      *string `json:"front_shiny_female"`
	FrontGray             *string `json:"front_gray"`
	FrontTransparent      *string `json:"front_transparent"`
	FrontShinyTransparent *string `json:"front_shiny_transparent"`
	BackDefault           *string `json:"back_default"`
	BackFemale            *string `json:"back_female"`
	BackShiny             *string `json:"back_shiny"`
	BackShinyFemale       *string `json:"back_shiny_female"`
	BackGray              *string `json:"back_gray"`
	BackTransparent       *string `json:"back_transparent"`
	BackShinyTransparent  *string `json:"back_shiny_transparent"`

	Animated *GameSprites `json:"animated,omitempty"`
}

// VersionSprites holds per-game sprites by generation
type VersionSprites struct {
	GenerationI struct {
		RedBlue GameSprites `json:"red-blue"`
		Yellow  GameSprites `json:"yellow"`
	} `json:"generation-i"`
	GenerationII struct {
		Crystal GameSprites `json:"crystal"`
		Gold    GameSprites `json:"gold"`
		Silver  GameSprites `json:"silver"`
	} `json:"generation-ii"`
	GenerationIII struct {
		RubySapphire     GameSprites `json:"ruby-sapphire"`
		Emerald          GameSprites `json:"emerald"`
		FireredLeafgreen GameSprites `json:"firered-leafgreen"`
	} `json:"generation-iii"`
	GenerationIV struct {
		DiamondPearl        GameSprites `json:"diamond-pearl"`
		Platinum            GameSprites `json:"platinum"`
		HeartgoldSoulsilver GameSprites `json:"heartgold-soulsilver"`
	} `json:"generation-iv"`
	GenerationV struct {
		BlackWhite GameSprites `json:"black-white"`
	} `json:"generation-v"`
	GenerationVI struct {
		XY                     GameSprites `json:"x-y"`
		OmegarubyAlphasapphire GameSprites `json:"omegaruby-alphasapphire"`
	} `json:"generation-vi"`
	GenerationVII struct {
		UltraSunUltraMoon GameSprites `json:"ultra-sun-ultra-moon"`
		Icons             GameSprites `json:"icons"`
	} `json:"generation-vii"`
	GenerationVIII struct {
		BrilliantDiamondShiningPearl GameSprites `json:"brilliant-diamond-shining-pearl"`
		Icons                        GameSprites `json:"icons"`
	} `json:"generation-viii"`
	GenerationIX struct {
		ScarletViolet GameSprites `json:"scarlet-violet"`
	} `json:"generation-ix"`
}

// Sprites is the sprite tree of a pokemon or form
type Sprites struct {
	FrontSprites
	BackDefault *string `json:"back_default"`
	BackShiny   *string `json:"back_shiny"`

	Other struct {
		Home            FrontSprites `json:"home"`
		OfficialArtwork FrontSprites `json:"official-artwork"`
		Showdown        FrontSprites `json:"showdown"`
	} `json:"other"`
	Versions VersionSprites `json:"versions"`
}

// Species is the /pokemon-species/{id} resource
type Species struct {
	ID                int                 `json:"id"`
	Name              string              `json:"name"`
	Order             int                 `json:"order"`
	GenderRate        int                 `json:"gender_rate"`
	IsBaby            bool                `json:"is_baby"`
	IsLegendary       bool                `json:"is_legendary"`
	IsMythical        bool                `json:"is_mythical"`
	Names             []Name              `json:"names"`
	Genera            []Genus             `json:"genera"`
	PokedexNumbers    []PokedexNumber     `json:"pokedex_numbers"`
	EggGroups         []NamedResource     `json:"egg_groups"`
	FlavorTextEntries []SpeciesFlavorText `json:"flavor_text_entries"`
	Varieties         []Variety           `json:"varieties"`
	EvolutionChain    *APIResource        `json:"evolution_chain"`
	Generation        NamedResource       `json:"generation"`
}

// APIResource is an unnamed resource reference
type APIResource struct {
	URL string `json:"url"`
}

// Genus is a localized category, e.g. "ねずみポケモン"
type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

// PokedexNumber is a species' entry in one pokedex
type PokedexNumber struct {
	EntryNumber int           `json:"entry_number"`
	Pokedex     NamedResource `json:"pokedex"`
}

// SpeciesFlavorText is a pokedex description in one version
type SpeciesFlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

// Variety is a pokemon belonging to a species
type Variety struct {
	IsDefault bool          `json:"is_default"`
	Pokemon   NamedResource `json:"pokemon"`
}

// Form is the /pokemon-form/{id} resource
type Form struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	FormName     string        `json:"form_name"`
	FormNames    []Name        `json:"form_names"`
	Names        []Name        `json:"names"`
	FormOrder    int           `json:"form_order"`
	IsDefault    bool          `json:"is_default"`
	IsBattleOnly bool          `json:"is_battle_only"`
	IsMega       bool          `json:"is_mega"`
	VersionGroup NamedResource `json:"version_group"`
	Sprites      Sprites       `json:"sprites"`
}

// EvolutionChain is the /evolution-chain/{id} resource
type EvolutionChain struct {
	ID              int            `json:"id"`
	BabyTriggerItem *NamedResource `json:"baby_trigger_item"`
	Chain           ChainLink      `json:"chain"`
}

// ChainLink is one node of an evolution tree
type ChainLink struct {
	IsBaby    bool          `json:"is_baby"`
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}

// Item is the /item/{id} resource
type Item struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

// Ability is the /ability/{id} resource
type Ability struct {
	ID                int                 `json:"id"`
	Name              string              `json:"name"`
	Names             []Name              `json:"names"`
	FlavorTextEntries []AbilityFlavorText `json:"flavor_text_entries"`
}

// AbilityFlavorText is an ability description in one version group
type AbilityFlavorText struct {
	FlavorText   string        `json:"flavor_text"`
	Language     NamedResource `json:"language"`
	VersionGroup NamedResource `json:"version_group"`
}

// Region is the /region/{id} resource
type Region struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Names          []Name          `json:"names"`
	MainGeneration *NamedResource  `json:"main_generation"`
	Pokedexes      []NamedResource `json:"pokedexes"`
	VersionGroups  []NamedResource `json:"version_groups"`
}

// Pokedex is the /pokedex/{id} resource
type Pokedex struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	IsMainSeries  bool            `json:"is_main_series"`
	Names         []Name          `json:"names"`
	Region        *NamedResource  `json:"region"`
	VersionGroups []NamedResource `json:"version_groups"`
}

// Version is the /version/{id} resource
type Version struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Names        []Name        `json:"names"`
	VersionGroup NamedResource `json:"version_group"`
}

// VersionGroup is the /version-group/{id} resource
type VersionGroup struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Order      int             `json:"order"`
	Generation NamedResource   `json:"generation"`
	Pokedexes  []NamedResource `json:"pokedexes"`
	Versions   []NamedResource `json:"versions"`
}
