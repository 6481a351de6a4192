// Package normalize turns raw PokeAPI resources into the compact records
// and the detail aggregate used by the rest of pokenest.
package normalize

import (
	"github.com/tildaslashalef/pokenest/internal/collection"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
)

// Japanese language codes, in order of preference
const (
	LangJapanese     = "ja"
	LangJapaneseKana = "ja-Hrkt"
)

// japanese returns the first item in "ja", else the first in "ja-Hrkt"
func japanese[T any](items []T, lang func(T) string) (T, bool) {
	for _, code := range []string{LangJapanese, LangJapaneseKana} {
		for _, item := range items {
			if lang(item) == code {
				return item, true
			}
		}
	}
	var zero T
	return zero, false
}

// JapaneseName returns the Japanese entry of names
func JapaneseName(names []pokeapi.Name) (string, bool) {
	n, ok := japanese(names, func(n pokeapi.Name) string { return n.Language.Name })
	if !ok {
		return "", false
	}
	return n.Name, true
}

// JapaneseNameOr returns the Japanese entry of names or fallback
func JapaneseNameOr(names []pokeapi.Name, fallback string) string {
	if name, ok := JapaneseName(names); ok {
		return name
	}
	return fallback
}

// IsOnlyAlphabet reports whether s is non-empty and made only of ASCII
// letters, '-' and '_'
func IsOnlyAlphabet(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// resourceID returns the id of a referenced resource, 0 when it has none
func resourceID(r pokeapi.NamedResource) int {
	id, err := collection.ExtractID(r.URL)
	if err != nil {
		return 0
	}
	return id
}

func resourceIDs(rs []pokeapi.NamedResource) []int {
	ids := make([]int, 0, len(rs))
	for _, r := range rs {
		if id := resourceID(r); id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
