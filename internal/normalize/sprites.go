package normalize

import (
	"strings"

	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
)

// SpritePrefix is stripped from stored image URLs
const SpritePrefix = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/"

// ImageURL expands a stored image path back into a full URL
func ImageURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return SpritePrefix + path
}

func stripPrefix(url string) string {
	return strings.TrimPrefix(url, SpritePrefix)
}

func present(s *string) bool {
	return s != nil && *s != ""
}

// DisplayImage picks the image shown for a record: the HOME render, then the
// official artwork, then the base sprite, then the showdown animation, then
// any per-game sprite. The result has SpritePrefix stripped.
func DisplayImage(s pokeapi.Sprites) *string {
	for _, candidate := range []*string{
		s.Other.Home.FrontDefault,
		s.Other.OfficialArtwork.FrontDefault,
		s.FrontDefault,
		s.Other.Showdown.FrontDefault,
	} {
		if present(candidate) {
			img := stripPrefix(*candidate)
			return &img
		}
	}

	if url, ok := searchVersionSprites(s.Versions); ok {
		img := stripPrefix(url)
		return &img
	}
	return nil
}

// versionGames lists the per-game sprite sets from generation I to IX.
// Animated sets follow the game they belong to.
func versionGames(v pokeapi.VersionSprites) []pokeapi.GameSprites {
	games := []pokeapi.GameSprites{
		v.GenerationI.RedBlue,
		v.GenerationI.Yellow,
		v.GenerationII.Crystal,
		v.GenerationII.Gold,
		v.GenerationII.Silver,
		v.GenerationIII.RubySapphire,
		v.GenerationIII.Emerald,
		v.GenerationIII.FireredLeafgreen,
		v.GenerationIV.DiamondPearl,
		v.GenerationIV.Platinum,
		v.GenerationIV.HeartgoldSoulsilver,
		v.GenerationV.BlackWhite,
	}
	if v.GenerationV.BlackWhite.Animated != nil {
		games = append(games, *v.GenerationV.BlackWhite.Animated)
	}
	return append(games,
		v.GenerationVI.XY,
		v.GenerationVI.OmegarubyAlphasapphire,
		v.GenerationVII.UltraSunUltraMoon,
		v.GenerationVII.Icons,
		v.GenerationVIII.BrilliantDiamondShiningPearl,
		v.GenerationVIII.Icons,
		v.GenerationIX.ScarletViolet,
	)
}

func frontFields(g pokeapi.GameSprites) []*string {
	return []*string{
		g.FrontDefault,
		g.FrontFemale,
		g.FrontShiny,
		g.FrontShinyFemale,
		g.FrontGray,
		g.FrontTransparent,
		g.FrontShinyTransparent,
	}
}

func backFields(g pokeapi.GameSprites) []*string {
	return []*string{
		g.BackDefault,
		g.BackFemale,
		g.BackShiny,
		g.BackShinyFemale,
		g.BackGray,
		g.BackTransparent,
		g.BackShinyTransparent,
	}
}

// searchVersionSprites returns the first per-game image, checking every
// front image of every game before any back image
func searchVersionSprites(v pokeapi.VersionSprites) (string, bool) {
	games := versionGames(v)
	for _, fields := range []func(pokeapi.GameSprites) []*string{frontFields, backFields} {
		for _, game := range games {
			for _, f := range fields(game) {
				if present(f) {
					return *f, true
				}
			}
		}
	}
	return "", false
}

// ImageSet returns the front images of the first tier among HOME, the base
// sprite and showdown that has both a default and a shiny image. URLs are
// kept whole.
func ImageSet(s pokeapi.Sprites) dex.Images {
	for _, tier := range []pokeapi.FrontSprites{s.Other.Home, s.FrontSprites, s.Other.Showdown} {
		if present(tier.FrontDefault) && present(tier.FrontShiny) {
			return dex.Images{
				Default:     *tier.FrontDefault,
				Female:      tier.FrontFemale,
				Shiny:       *tier.FrontShiny,
				ShinyFemale: tier.FrontShinyFemale,
			}
		}
	}
	return dex.Images{}
}
