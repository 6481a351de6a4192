package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/pokenest/internal/dex"
)

func strPtr(s string) *string { return &s }

func TestRecordRows(t *testing.T) {
	records := []dex.Record{
		{ID: 1, Name: strPtr("フシギダネ"), Types: []int{12, 4}, Pokedex: 1, Generation: 1},
		{ID: 10033, Name: strPtr("フシギバナ"), Variant: strPtr("メガシンカ"), Types: []int{12, 4}, Pokedex: 3, Generation: 6},
		{ID: 99999, Types: []int{0}},
	}

	rows := recordRows(records)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"0001", "1", "フシギダネ", "くさ/どく", "1"}, rows[0])
	assert.Equal(t, "フシギバナ (メガシンカ)", rows[1][2])
	assert.Equal(t, []string{"0000", "99999", "?", "", "0"}, rows[2])
}

func TestDetailMarkdown(t *testing.T) {
	agg := dex.DetailAggregate{
		Record: dex.Record{ID: 2, Name: strPtr("フシギソウ"), Types: []int{12}, Pokedex: 2, Generation: 1},
		Images: dex.Images{Default: "https://img.test/2.png"},
		Appearance: dex.Appearance{
			RegionNames: []string{"カントー"},
			Versions:    []dex.Version{{ID: 1, Name: "赤"}, {ID: 2, Name: "緑"}},
		},
		Abilities: []dex.Ability{
			{ID: 65, Name: "しんりょく", Texts: []dex.Text{{Text: "ピンチのとき\nくさわざの いりょくが あがる。"}}},
			{ID: 34, Name: "ようりょくそ", IsHidden: true},
		},
		Flavors: []dex.Text{{Text: "せなかの\nつぼみが", Versions: []dex.Version{{ID: 1, Name: "赤"}}}},
		Evolution: []dex.EvolutionNode{
			{ID: 1, Name: "フシギダネ", Stage: dex.StagePre, Depth: 0},
			{ID: 2, Name: "フシギソウ", IsMain: true, Depth: 1},
			{ID: 3, Name: "フシギバナ", Stage: dex.StageNext, Depth: 2},
		},
	}

	md := detailMarkdown(agg)
	assert.True(t, strings.HasPrefix(md, "# No.0002 フシギソウ\n"))
	assert.Contains(t, md, "| くさ | 1 | 2 |")
	assert.Contains(t, md, "Sprite: https://img.test/2.png")
	assert.Contains(t, md, "- Regions: カントー")
	assert.Contains(t, md, "- Versions: 赤・緑")
	assert.Contains(t, md, "- **しんりょく**: ピンチのとき くさわざの いりょくが あがる。")
	assert.Contains(t, md, "- **ようりょくそ (hidden)**\n")
	assert.Contains(t, md, "> せなかの つぼみが\n>\n> *赤*")
	assert.Contains(t, md, "- [進化前] フシギダネ\n  - **フシギソウ**\n    - [進化先] フシギバナ\n")
	assert.NotContains(t, md, "## Forms")
}

func TestDetailMarkdownSkipsSingleStageEvolution(t *testing.T) {
	md := detailMarkdown(dex.DetailAggregate{
		Record:    dex.Record{ID: 132, Name: strPtr("メタモン")},
		Evolution: []dex.EvolutionNode{{ID: 132, Name: "メタモン", IsMain: true}},
	})
	assert.NotContains(t, md, "## Evolution")
	assert.NotContains(t, md, "Sprite:")
}

func TestPokedexTree(t *testing.T) {
	kanto := dex.Region{ID: 1, Name: "カントー"}
	groups, items := pokedexTree([]dex.PokedexData{
		{ID: 2, Name: "カントー図鑑", Region: kanto, VGroup: []dex.VersionGroup{
			{ID: 1, Version: []dex.Version{{ID: 1, Name: "赤"}, {ID: 2, Name: "緑"}}},
		}},
		{ID: 3, Name: "ジョウト図鑑", Region: dex.Region{ID: 2, Name: "ジョウト"}},
		{ID: 26, Name: "カントー図鑑 (Let's Go)", Region: kanto},
	})

	assert.Equal(t, []string{"カントー", "ジョウト"}, groups)
	assert.Equal(t, []string{"カントー図鑑 (赤・緑)", "カントー図鑑 (Let's Go)"}, items["カントー"])
	assert.Equal(t, []string{"ジョウト図鑑"}, items["ジョウト"])
}

func TestAbilitySummary(t *testing.T) {
	assert.Empty(t, abilitySummary(dex.AbilityData{ID: 1}))

	a := dex.AbilityData{ID: 1, FlavorTextEntries: []dex.FlavorInfo{
		{FlavorText: "ふるい せつめい", VersionGroup: []int{1}},
		{FlavorText: "あたらしい\nせつめい", VersionGroup: []int{2}},
	}}
	assert.Equal(t, "あたらしい せつめい", abilitySummary(a))
}

func TestSchemaVersionLine(t *testing.T) {
	tests := []struct {
		name    string
		version uint
		dirty   bool
		want    string
	}{
		{name: "empty", version: 0, want: "Schema version: none (run 'pokenest migrate up')"},
		{name: "applied", version: 2, want: "Schema version: 2"},
		{name: "dirty", version: 2, dirty: true, want: "Schema version: 2 (dirty, a migration failed part way)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schemaVersionLine(tt.version, tt.dirty))
		})
	}
}
