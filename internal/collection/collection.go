// Package collection merges and orders the cached record collection.
package collection

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tildaslashalef/pokenest/internal/dex"
)

// Merge concatenates current and incoming, keeps the first record seen for
// each id and orders the result by (SortPriority, SpeciesID, ID). Neither
// input is modified.
func Merge(current, incoming []dex.Record) []dex.Record {
	seen := make(map[int]struct{}, len(current)+len(incoming))
	merged := make([]dex.Record, 0, len(current)+len(incoming))

	for _, batch := range [][]dex.Record{current, incoming} {
		for _, record := range batch {
			if _, ok := seen[record.ID]; ok {
				continue
			}
			seen[record.ID] = struct{}{}
			merged = append(merged, record)
		}
	}

	slices.SortStableFunc(merged, Compare)
	return merged
}

// Compare orders records by sort priority, then species, then id
func Compare(a, b dex.Record) int {
	if a.SortPriority != b.SortPriority {
		return a.SortPriority - b.SortPriority
	}
	if a.SpeciesID != b.SpeciesID {
		return a.SpeciesID - b.SpeciesID
	}
	return a.ID - b.ID
}

// ExtractID returns the numeric id at the end of a PokeAPI resource URL.
// "…/pokemon/25/" and "…/pokemon/25" both yield 25.
func ExtractID(url string) (int, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(url), "/")
	idx := strings.LastIndex(trimmed, "/")
	segment := trimmed[idx+1:]

	id, err := strconv.Atoi(segment)
	if err != nil {
		return 0, fmt.Errorf("no numeric id in %q", url)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %d in %q", id, url)
	}
	return id, nil
}

// ExtractIDs applies ExtractID to every url, failing on the first bad one
func ExtractIDs(urls ...string) ([]int, error) {
	ids := make([]int, 0, len(urls))
	for _, url := range urls {
		id, err := ExtractID(url)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
