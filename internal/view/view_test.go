package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/meur/minidex/internal/dataset"
	"github.com/meur/minidex/internal/models"
)

func names(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func levels(records []models.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Level
	}
	return out
}

func TestApply_SearchContainment(t *testing.T) {
	records := dataset.Builtin().Records
	tr := New(language.French)

	for _, search := range []string{"", "a", "ZAR", "chu", "é", "xyz"} {
		got := tr.Apply(records, models.ViewState{Search: search})

		matched := map[string]bool{}
		for _, r := range got {
			matched[r.Name] = true
			assert.Contains(t, strings.ToLower(r.Name), strings.ToLower(search))
		}
		for _, r := range records {
			if !matched[r.Name] {
				assert.NotContains(t, strings.ToLower(r.Name), strings.ToLower(search))
			}
		}
	}
}

func TestApply_EmptyStateKeepsEverythingInOrder(t *testing.T) {
	records := dataset.Builtin().Records
	got := New(language.French).Apply(records, models.ViewState{})
	assert.Equal(t, names(records), names(got))
}

func TestApply_CategoryFilterIsSubstringOfJoinedField(t *testing.T) {
	records := []models.Record{
		{Name: "A", Categories: []string{"Plante", "Poison"}, Level: 1, Image: "a.png"},
		{Name: "B", Categories: []string{"Feu"}, Level: 1, Image: "b.png"},
		{Name: "C", Categories: []string{"Poison"}, Level: 1, Image: "c.png"},
		{Name: "D", Categories: []string{"Eau", "Glace"}, Level: 1, Image: "d.png"},
	}
	tr := New(language.French)

	assert.Equal(t, []string{"A", "C"}, names(tr.Apply(records, models.ViewState{Category: "Poison"})))
	// Matches across the separator of the joined field
	assert.Equal(t, []string{"D"}, names(tr.Apply(records, models.ViewState{Category: "Eau,Gl"})))
	// Partial labels match too
	assert.Equal(t, []string{"A"}, names(tr.Apply(records, models.ViewState{Category: "Plan"})))
	// Category matching is case-sensitive
	assert.Empty(t, tr.Apply(records, models.ViewState{Category: "feu"}))
}

func TestApply_SearchAndCategoryCombined(t *testing.T) {
	got := New(language.French).Apply(dataset.Builtin().Records, models.ViewState{
		Search:   "zarre",
		Category: "Poison",
		Sort:     models.SortLevelDesc,
	})
	assert.Equal(t, []string{"Florizarre", "Bulbizarre"}, names(got))
}

func TestApply_EmptyResult(t *testing.T) {
	got := New(language.French).Apply(dataset.Builtin().Records, models.ViewState{Search: "Ombre"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_NameOrdering(t *testing.T) {
	records := dataset.Builtin().Records
	tr := New(language.French)
	c := collate.New(language.French)

	asc := tr.Apply(records, models.ViewState{Sort: models.SortNameAsc})
	require.Len(t, asc, len(records))
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, c.CompareString(asc[i-1].Name, asc[i].Name), 0,
			"%s before %s", asc[i-1].Name, asc[i].Name)
	}

	// Accented names sort with their base letter, not after Z
	ascNames := names(asc)
	assert.Equal(t, "Bulbizarre", ascNames[0])
	assert.Equal(t, "Tortank", ascNames[len(ascNames)-1])
	assert.Equal(t, []string{"Ectoplasma", "Évoli"}, ascNames[3:5])

	desc := names(tr.Apply(records, models.ViewState{Sort: models.SortNameDesc}))
	for i, j := 0, len(desc)-1; i < j; i, j = i+1, j-1 {
		desc[i], desc[j] = desc[j], desc[i]
	}
	assert.Equal(t, ascNames, desc)
}

func TestApply_LevelOrdering(t *testing.T) {
	records := []models.Record{
		{Name: "Magicarpe", Categories: []string{"Eau"}, Level: 5, Image: "m.png"},
		{Name: "Mewtwo", Categories: []string{"Psy"}, Level: 70, Image: "w.png"},
		{Name: "Pikachu", Categories: []string{"Électrique"}, Level: 35, Image: "p.png"},
	}
	tr := New(language.French)

	assert.Equal(t, []int{5, 35, 70}, levels(tr.Apply(records, models.ViewState{Sort: models.SortLevelAsc})))
	assert.Equal(t, []int{70, 35, 5}, levels(tr.Apply(records, models.ViewState{Sort: models.SortLevelDesc})))
	// Input untouched
	assert.Equal(t, []int{5, 70, 35}, levels(records))
}

func TestApply_LevelTiesAreStable(t *testing.T) {
	records := dataset.Builtin().Records
	tr := New(language.French)

	asc := tr.Apply(records, models.ViewState{Sort: models.SortLevelAsc})
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Level, asc[i].Level)
	}
	// Pikachu precedes Lokhlass in the dataset, both level 35
	assert.Equal(t, []string{"Onix", "Pikachu", "Lokhlass", "Raichu", "Ectoplasma", "Ronflex"}, names(asc)[7:13])

	desc := tr.Apply(records, models.ViewState{Sort: models.SortLevelDesc})
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Level, desc[i].Level)
	}
	assert.Equal(t, []string{"Mewtwo", "Florizarre", "Tortank", "Dracaufeu", "Ectoplasma", "Ronflex", "Raichu", "Pikachu", "Lokhlass"}, names(desc)[:9])
}

func TestApply_UnknownSortKeepsOrder(t *testing.T) {
	records := dataset.Builtin().Records
	tr := New(language.French)

	got := tr.Apply(records, models.ViewState{Sort: models.SortKey("weight-asc")})
	assert.Equal(t, names(records), names(got))
}

func TestApply_ZeroTransformerUsesDefaultLocale(t *testing.T) {
	var tr Transformer
	got := tr.Apply(dataset.Builtin().Records, models.ViewState{Search: "o", Sort: models.SortNameAsc})
	assert.Equal(t, "Ectoplasma", got[0].Name)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, models.SortNameAsc, models.ParseSortKey("name-asc"))
	assert.Equal(t, models.SortLevelDesc, models.ParseSortKey("level-desc"))
	assert.Equal(t, models.SortNone, models.ParseSortKey(""))
	assert.Equal(t, models.SortNone, models.ParseSortKey("NAME-ASC"))
}
