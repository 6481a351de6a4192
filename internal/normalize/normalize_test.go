package normalize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
)

const api = "https://pokeapi.co/api/v2"

func ref(category string, id int, name string) pokeapi.NamedResource {
	return pokeapi.NamedResource{Name: name, URL: fmt.Sprintf("%s/%s/%d/", api, category, id)}
}

func lang(code string) pokeapi.NamedResource {
	return pokeapi.NamedResource{Name: code, URL: api + "/language/" + code + "/"}
}

func name(code, value string) pokeapi.Name {
	return pokeapi.Name{Name: value, Language: lang(code)}
}

func sp(s string) *string { return &s }

func TestIsOnlyAlphabet(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"charizard-mega-x", true},
		{"Mr_Mime", true},
		{"メガシンカ", false},
		{"porygon2", false},
		{"", false},
		{"ガラルのすがた", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOnlyAlphabet(tt.in))
		})
	}
}

func TestJapaneseName(t *testing.T) {
	got, ok := JapaneseName([]pokeapi.Name{name("en", "Pikachu"), name("ja-Hrkt", "ピカチュウ"), name("ja", "ピカチュウ(ja)")})
	require.True(t, ok)
	assert.Equal(t, "ピカチュウ(ja)", got, "ja wins over ja-Hrkt regardless of order")

	got, ok = JapaneseName([]pokeapi.Name{name("en", "Pikachu"), name("ja-Hrkt", "ピカチュウ")})
	require.True(t, ok)
	assert.Equal(t, "ピカチュウ", got)

	_, ok = JapaneseName([]pokeapi.Name{name("en", "Pikachu")})
	assert.False(t, ok)

	assert.Equal(t, "pikachu", JapaneseNameOr(nil, "pikachu"))
}

func TestDisplayImage(t *testing.T) {
	withVersions := func(mut func(v *pokeapi.VersionSprites)) pokeapi.Sprites {
		var s pokeapi.Sprites
		mut(&s.Versions)
		return s
	}

	tests := []struct {
		name    string
		sprites pokeapi.Sprites
		want    *string
	}{
		{
			name: "home first",
			sprites: func() pokeapi.Sprites {
				var s pokeapi.Sprites
				s.Other.Home.FrontDefault = sp(SpritePrefix + "other/home/25.png")
				s.Other.OfficialArtwork.FrontDefault = sp(SpritePrefix + "other/official-artwork/25.png")
				s.FrontDefault = sp(SpritePrefix + "25.png")
				return s
			}(),
			want: sp("other/home/25.png"),
		},
		{
			name: "official artwork when home is empty",
			sprites: func() pokeapi.Sprites {
				var s pokeapi.Sprites
				s.Other.Home.FrontDefault = sp("")
				s.Other.OfficialArtwork.FrontDefault = sp(SpritePrefix + "other/official-artwork/25.png")
				s.FrontDefault = sp(SpritePrefix + "25.png")
				return s
			}(),
			want: sp("other/official-artwork/25.png"),
		},
		{
			name: "base sprite",
			sprites: func() pokeapi.Sprites {
				var s pokeapi.Sprites
				s.FrontDefault = sp(SpritePrefix + "25.png")
				s.Other.Showdown.FrontDefault = sp(SpritePrefix + "other/showdown/25.gif")
				return s
			}(),
			want: sp("25.png"),
		},
		{
			name: "showdown",
			sprites: func() pokeapi.Sprites {
				var s pokeapi.Sprites
				s.Other.Showdown.FrontDefault = sp(SpritePrefix + "other/showdown/25.gif")
				return s
			}(),
			want: sp("other/showdown/25.gif"),
		},
		{
			name: "front of a later game beats back of an earlier one",
			sprites: withVersions(func(v *pokeapi.VersionSprites) {
				v.GenerationI.RedBlue.BackDefault = sp(SpritePrefix + "versions/generation-i/red-blue/back/25.png")
				v.GenerationVII.Icons.FrontDefault = sp(SpritePrefix + "versions/generation-vii/icons/25.png")
			}),
			want: sp("versions/generation-vii/icons/25.png"),
		},
		{
			name: "earliest generation wins",
			sprites: withVersions(func(v *pokeapi.VersionSprites) {
				v.GenerationIX.ScarletViolet.FrontDefault = sp(SpritePrefix + "versions/generation-ix/25.png")
				v.GenerationIII.Emerald.FrontShiny = sp(SpritePrefix + "versions/generation-iii/emerald/shiny/25.png")
			}),
			want: sp("versions/generation-iii/emerald/shiny/25.png"),
		},
		{
			name: "animated black-white",
			sprites: withVersions(func(v *pokeapi.VersionSprites) {
				v.GenerationV.BlackWhite.Animated = &pokeapi.GameSprites{FrontDefault: sp(SpritePrefix + "bw/animated/25.gif")}
			}),
			want: sp("bw/animated/25.gif"),
		},
		{
			name: "back sprite as last resort",
			sprites: withVersions(func(v *pokeapi.VersionSprites) {
				v.GenerationIV.Platinum.BackShiny = sp(SpritePrefix + "back/shiny/25.png")
			}),
			want: sp("back/shiny/25.png"),
		},
		{
			name: "foreign url kept whole",
			sprites: func() pokeapi.Sprites {
				var s pokeapi.Sprites
				s.FrontDefault = sp("https://example.com/25.png")
				return s
			}(),
			want: sp("https://example.com/25.png"),
		},
		{
			name: "nothing",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayImage(tt.sprites))
		})
	}
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, SpritePrefix+"25.png", ImageURL("25.png"))
	assert.Equal(t, "https://example.com/25.png", ImageURL("https://example.com/25.png"))
	assert.Equal(t, "", ImageURL(""))
}

func TestImageSet(t *testing.T) {
	var s pokeapi.Sprites
	s.Other.Home.FrontDefault = sp("home.png")
	s.FrontDefault = sp("front.png")
	s.FrontShiny = sp("front-shiny.png")
	s.FrontFemale = sp("front-female.png")

	got := ImageSet(s)
	assert.Equal(t, "front.png", got.Default, "home has no shiny image so the base tier is used")
	assert.Equal(t, "front-shiny.png", got.Shiny)
	require.NotNil(t, got.Female)
	assert.Equal(t, "front-female.png", *got.Female)
	assert.Nil(t, got.ShinyFemale)

	assert.Equal(t, dex.Images{}, ImageSet(pokeapi.Sprites{}))
}

func pokemon(id int, pokemonName string, speciesID int, isDefault bool) *pokeapi.Pokemon {
	p := &pokeapi.Pokemon{
		ID:        id,
		Name:      pokemonName,
		IsDefault: isDefault,
		Species:   ref("pokemon-species", speciesID, pokemonName),
		Forms:     []pokeapi.NamedResource{ref("pokemon-form", id, pokemonName)},
		Types:     []pokeapi.PokemonType{{Slot: 1, Type: ref("type", 13, "electric")}},
	}
	p.Sprites.Other.Home.FrontDefault = sp(fmt.Sprintf("%sother/home/%d.png", SpritePrefix, id))
	p.Sprites.FrontShiny = sp("shiny.png")
	return p
}

func species(id int, jaName string) *pokeapi.Species {
	return &pokeapi.Species{
		ID:    id,
		Names: []pokeapi.Name{name("en", "x"), name("ja", jaName)},
		PokedexNumbers: []pokeapi.PokedexNumber{
			{EntryNumber: id, Pokedex: ref("pokedex", 1, "national")},
			{EntryNumber: 22, Pokedex: ref("pokedex", 2, "kanto")},
			{EntryNumber: 104, Pokedex: ref("pokedex", 3, "original-johto")},
		},
		EggGroups: []pokeapi.NamedResource{ref("egg-group", 5, "ground"), ref("egg-group", 6, "fairy")},
	}
}

func form(id int, formName string, isMega bool, versionGroup int, names ...pokeapi.Name) *pokeapi.Form {
	return &pokeapi.Form{
		ID:           id,
		FormName:     formName,
		FormNames:    names,
		IsMega:       isMega,
		VersionGroup: ref("version-group", versionGroup, "vg"),
	}
}

func TestBuildRecord(t *testing.T) {
	t.Run("ordinary pokemon", func(t *testing.T) {
		r := BuildRecord(pokemon(25, "pikachu", 25, true), species(25, "ピカチュウ"), form(25, "", false, 1), 25)

		assert.Equal(t, 25, r.ID)
		require.NotNil(t, r.Name)
		assert.Equal(t, "ピカチュウ", *r.Name)
		assert.Equal(t, []int{13}, r.Types)
		assert.Equal(t, 25, r.Pokedex)
		assert.Equal(t, 25, r.SpeciesID)
		assert.Equal(t, []int{2, 3}, r.Regions)
		assert.Equal(t, 1, r.Generation)
		assert.Equal(t, 0, r.GenderVariant)
		assert.Equal(t, []int{5, 6}, r.EggGroups)
		require.NotNil(t, r.Image)
		assert.Equal(t, "other/home/25.png", *r.Image)
		assert.Nil(t, r.Variant)
		assert.Equal(t, dex.PriorityNormal, r.SortPriority)
	})

	t.Run("nothing fetched", func(t *testing.T) {
		r := BuildRecord(nil, nil, nil, 7)
		assert.Equal(t, dex.Record{ID: 7, Types: []int{0}, Regions: []int{0}, EggGroups: []int{0}}, r)
	})

	t.Run("placeholder species", func(t *testing.T) {
		null := NullSpecies(25)
		r := BuildRecord(pokemon(25, "pikachu", 25, true), &null, nil, 25)
		assert.Nil(t, r.Name)
		assert.Equal(t, 25, r.SpeciesID)
		assert.Equal(t, 0, r.Pokedex)
		assert.Equal(t, []int{0}, r.Regions)
		assert.Equal(t, []int{0}, r.EggGroups)
	})

	t.Run("isGen follows the missing shiny sprite", func(t *testing.T) {
		p := pokemon(25, "pikachu", 25, true)
		assert.Equal(t, 0, BuildRecord(p, nil, nil, 25).GenderVariant)

		p.Sprites.FrontShiny = nil
		assert.Equal(t, 1, BuildRecord(p, nil, nil, 25).GenderVariant)
	})

	tests := []struct {
		name         string
		detail       *pokeapi.Pokemon
		form         *pokeapi.Form
		wantPriority int
		wantVariant  *string
	}{
		{
			name:         "mega form without japanese name",
			detail:       pokemon(10034, "charizard-mega-x", 6, false),
			form:         form(10034, "mega-x", true, 15, name("en", "Mega Charizard X")),
			wantPriority: dex.PriorityMega,
			wantVariant:  sp(LabelMega),
		},
		{
			name:         "mega form keeps japanese name",
			detail:       pokemon(10034, "charizard-mega-x", 6, false),
			form:         form(10034, "mega-x", true, 15, name("ja", "メガリザードンX")),
			wantPriority: dex.PriorityMega,
			wantVariant:  sp("メガリザードンX"),
		},
		{
			name:         "gigantamax form",
			detail:       pokemon(10195, "charizard-gmax", 6, false),
			form:         form(10195, "gmax", false, 20),
			wantPriority: dex.PriorityGmax,
			wantVariant:  sp(LabelGmax),
		},
		{
			name:         "mega without form data",
			detail:       pokemon(10034, "charizard-mega-x", 6, false),
			wantPriority: dex.PriorityMega,
			wantVariant:  sp(LabelMega),
		},
		{
			name:         "gigantamax without form data",
			detail:       pokemon(10195, "charizard-gmax", 6, false),
			wantPriority: dex.PriorityGmax,
			wantVariant:  sp(LabelGmax),
		},
		{
			name:         "totem",
			detail:       pokemon(10093, "raticate-totem-alola", 20, false),
			wantPriority: dex.PriorityHidden,
			wantVariant:  sp(LabelTotem),
		},
		{
			name:         "special pikachu",
			detail:       pokemon(10080, "pikachu-rock-star", 25, false),
			wantPriority: dex.PriorityEvent,
			wantVariant:  sp("pikachu-rock-star"),
		},
		{
			name:         "ash greninja",
			detail:       pokemon(10117, "greninja-ash", 658, false),
			wantPriority: dex.PriorityEvent,
			wantVariant:  sp("greninja-ash"),
		},
		{
			name:         "partner eevee",
			detail:       pokemon(10159, "eevee-starter", 133, false),
			wantPriority: dex.PriorityEvent,
			wantVariant:  sp("eevee-starter"),
		},
		{
			name:         "regional form with japanese name",
			detail:       pokemon(10091, "rattata-alola", 19, false),
			form:         form(10091, "alola", false, 17, name("ja-Hrkt", "アローラのすがた")),
			wantPriority: dex.PriorityNormal,
			wantVariant:  sp("アローラのすがた"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := BuildRecord(tt.detail, nil, tt.form, tt.detail.ID)
			assert.Equal(t, tt.wantPriority, r.SortPriority)
			assert.Equal(t, tt.wantVariant, r.Variant)
		})
	}
}

func TestBuildRecordImageFallsBackToForm(t *testing.T) {
	p := pokemon(10001, "deoxys-attack", 386, false)
	p.Sprites.Other.Home.FrontDefault = nil

	f := form(10001, "attack", false, 6)
	f.Sprites.FrontDefault = sp(SpritePrefix + "10001.png")

	r := BuildRecord(p, nil, f, 10001)
	require.NotNil(t, r.Image)
	assert.Equal(t, "10001.png", *r.Image)
	assert.Equal(t, 6, r.Generation)
}

func abilityFlavor(text, code string, vg int) pokeapi.AbilityFlavorText {
	return pokeapi.AbilityFlavorText{FlavorText: text, Language: lang(code), VersionGroup: ref("version-group", vg, "vg")}
}

func TestNormalizeAbilities(t *testing.T) {
	got := NormalizeAbilities([]pokeapi.Ability{
		{
			ID:    9,
			Name:  "static",
			Names: []pokeapi.Name{name("ja", "せいでんき")},
			FlavorTextEntries: []pokeapi.AbilityFlavorText{
				abilityFlavor("まひ させることが ある。", "ja", 5),
				abilityFlavor("may paralyze", "en", 5),
				abilityFlavor("まひ させることが ある。", "ja", 6),
				abilityFlavor("ふれると まひ する。", "ja", 7),
			},
		},
		{ID: 300, Name: "unnamed", FlavorTextEntries: []pokeapi.AbilityFlavorText{abilityFlavor("かな", "ja-Hrkt", 1)}},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "せいでんき", got[0].Name)
	assert.Equal(t, []dex.FlavorInfo{
		{FlavorText: "まひ させることが ある。", VersionGroup: []int{5, 6}},
		{FlavorText: "ふれると まひ する。", VersionGroup: []int{7}},
	}, got[0].FlavorTextEntries)

	assert.Equal(t, "unnamed", got[1].Name, "falls back to the api name")
	assert.Equal(t, []dex.FlavorInfo{{FlavorText: "かな", VersionGroup: []int{1}}}, got[1].FlavorTextEntries)
}

func catalogFixture() ([]pokeapi.Region, []pokeapi.Pokedex, []pokeapi.Version, []pokeapi.VersionGroup) {
	gen1 := ref("generation", 1, "generation-i")
	gen2 := ref("generation", 2, "generation-ii")

	regions := []pokeapi.Region{
		{ID: 2, Name: "johto", Names: []pokeapi.Name{name("ja", "ジョウト")}, MainGeneration: &gen2},
		{ID: 1, Name: "kanto", Names: []pokeapi.Name{name("ja", "カントー")}, MainGeneration: &gen1},
	}
	kanto := ref("region", 1, "kanto")
	johto := ref("region", 2, "johto")
	pokedexes := []pokeapi.Pokedex{
		{ID: 3, Name: "original-johto", IsMainSeries: true, Region: &johto, VersionGroups: []pokeapi.NamedResource{ref("version-group", 3, "gold-silver")}},
		{ID: 1, Name: "national", IsMainSeries: true},
		{ID: 2, Name: "kanto", IsMainSeries: true, Region: &kanto, Names: []pokeapi.Name{name("ja", "カントー図鑑")},
			VersionGroups: []pokeapi.NamedResource{ref("version-group", 1, "red-blue"), ref("version-group", 2, "yellow"), ref("version-group", 99, "missing")}},
		{ID: 40, Name: "lost", Region: &pokeapi.NamedResource{Name: "nowhere", URL: api + "/region/77/"}},
	}
	versions := []pokeapi.Version{
		{ID: 1, Name: "red", Names: []pokeapi.Name{name("ja", "赤")}, VersionGroup: ref("version-group", 1, "red-blue")},
		{ID: 2, Name: "blue", Names: []pokeapi.Name{name("ja", "青")}, VersionGroup: ref("version-group", 1, "red-blue")},
		{ID: 3, Name: "yellow", Names: []pokeapi.Name{name("ja", "ピカチュウ")}, VersionGroup: ref("version-group", 2, "yellow")},
		{ID: 4, Name: "gold", VersionGroup: ref("version-group", 3, "gold-silver")},
	}
	groups := []pokeapi.VersionGroup{
		{ID: 1, Name: "red-blue", Generation: gen1, Versions: []pokeapi.NamedResource{ref("version", 1, "red"), ref("version", 2, "blue")}},
		{ID: 2, Name: "yellow", Generation: gen1, Versions: []pokeapi.NamedResource{ref("version", 3, "yellow")}},
		{ID: 3, Name: "gold-silver", Generation: gen2, Versions: []pokeapi.NamedResource{ref("version", 4, "gold"), ref("version", 5, "silver")}},
	}
	return regions, pokedexes, versions, groups
}

func TestBuildPokedexCatalog(t *testing.T) {
	catalog := BuildPokedexCatalog(catalogFixture())

	require.Len(t, catalog, 2, "national and region-less pokedexes are dropped")
	kanto := catalog[0]
	assert.Equal(t, 2, kanto.ID)
	assert.Equal(t, "カントー図鑑", kanto.Name)
	assert.Equal(t, dex.Region{ID: 1, Name: "カントー", MainGene: 1}, kanto.Region)
	assert.Equal(t, []dex.VersionGroup{
		{ID: 1, Version: []dex.Version{{ID: 1, Name: "赤", Generation: 1}, {ID: 2, Name: "青", Generation: 1}}},
		{ID: 2, Version: []dex.Version{{ID: 3, Name: "ピカチュウ", Generation: 1}}},
	}, kanto.VGroup)

	johto := catalog[1]
	assert.Equal(t, "original-johto", johto.Name)
	assert.Equal(t, []dex.VersionGroup{{ID: 3, Version: []dex.Version{{ID: 4, Name: "gold", Generation: 2}}}}, johto.VGroup)
}

func TestVersions(t *testing.T) {
	catalog := BuildPokedexCatalog(catalogFixture())

	got := Versions(catalog, []int{3, 1})
	assert.Equal(t, []int{1, 2, 4}, versionIDs(got))
	assert.Empty(t, Versions(catalog, nil))
}

func versionIDs(vs []dex.Version) []int {
	ids := make([]int, len(vs))
	for i, v := range vs {
		ids[i] = v.ID
	}
	return ids
}
