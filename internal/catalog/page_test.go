package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tildaslashalef/pokenest/internal/dex"
)

func TestPage(t *testing.T) {
	records := cachedRecords(7)

	tests := []struct {
		name      string
		page      int
		size      int
		wantIDs   []int
		wantPage  int
		wantPages int
	}{
		{"first page", 1, 3, []int{1, 2, 3}, 1, 3},
		{"last partial page", 3, 3, []int{7}, 3, 3},
		{"page past the end is clamped", 9, 3, []int{7}, 3, 3},
		{"page below one is clamped", 0, 3, []int{1, 2, 3}, 1, 3},
		{"zero size falls back to one", 2, 0, []int{2}, 2, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Page(records, tt.page, tt.size)
			assert.Equal(t, tt.wantIDs, recordIDs(got.Records))
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPages, got.Pages)
			assert.Equal(t, 7, got.Total)
		})
	}
}

func TestPageEmpty(t *testing.T) {
	got := Page(nil, 1, 30)
	assert.Empty(t, got.Records)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.Pages)
	assert.Zero(t, got.Total)
}

func TestSearch(t *testing.T) {
	name := func(s string) *string { return &s }
	records := []dex.Record{
		{ID: 25, Pokedex: 25, Name: name("ピカチュウ")},
		{ID: 26, Pokedex: 26, Name: name("ライチュウ")},
		{ID: 10100, Pokedex: 26, Name: name("ライチュウ"), Variant: name("アローラのすがた")},
		{ID: 10094, Pokedex: 25, Name: name("ピカチュウ"), Variant: name("pikachu-original-cap")},
	}

	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{25, 26, 10100, 10094}},
		{"チュウ", []int{25, 26, 10100, 10094}},
		{"ライ", []int{26, 10100}},
		{"アローラ", []int{10100}},
		{"ORIGINAL", []int{10094}},
		{"26", []int{26, 10100}},
		{"10094", []int{10094}},
		{"フシギダネ", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, recordIDs(Search(records, tt.query)))
		})
	}
}
