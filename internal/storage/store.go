// Package storage persists the cached collections as JSON strings in a
// key-value store.
package storage

import (
	"context"
	"errors"
)

// Keys of the cached collections and their count companions
const (
	KeyPokemon      = "pokemonData"
	KeyPokemonCount = "pokeRegCount"
	KeyAbility      = "ability"
	KeyAbilityCount = "abilityCount"
	KeyPokedex      = "pokedex"
	KeyPokedexCount = "pokeVerCount"

	probeKey = "__storage_test__"
)

// ErrQuotaExceeded is returned by a store that has run out of space
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a string key-value store
type Store interface {
	// Get returns the value for key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)

	Set(ctx context.Context, key, value string) error

	Remove(ctx context.Context, key string) error
}
