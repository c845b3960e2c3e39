// Package view derives the visible, ordered card list from the catalog and
// the current input values.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/meur/minidex/internal/models"
)

// DefaultLocale is used for name ordering when none is configured
var DefaultLocale = language.French

// Transformer filters and sorts records
type Transformer struct {
	Locale language.Tag
}

// New creates a Transformer comparing names in the given locale
func New(locale language.Tag) *Transformer {
	return &Transformer{Locale: locale}
}

// Apply returns the records matching state, ordered by state.Sort.
// The input slice is never modified. An empty result is a valid outcome.
func (t *Transformer) Apply(records []models.Record, state models.ViewState) []models.Record {
	out := Filter(records, state.Search, state.Category)
	t.Sort(out, state.Sort)
	return out
}

// Filter keeps records whose name contains search (case-insensitive) and whose
// comma-joined category field contains category.
//
// The category test is a substring test on the joined field, not an exact
// label match: a filter that is part of another label matches that label too.
func Filter(records []models.Record, search, category string) []models.Record {
	query := strings.ToLower(search)

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if !strings.Contains(strings.ToLower(r.Name), query) {
			continue
		}
		if category != "" && !strings.Contains(r.CategoryField(), category) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort orders records in place. Ties and unknown keys keep the current order.
func (t *Transformer) Sort(records []models.Record, key models.SortKey) {
	switch key {
	case models.SortNameAsc, models.SortNameDesc:
		// Collators keep internal buffers, one per call
		c := collate.New(t.locale())
		desc := key == models.SortNameDesc
		sort.SliceStable(records, func(i, j int) bool {
			if desc {
				return c.CompareString(records[j].Name, records[i].Name) < 0
			}
			return c.CompareString(records[i].Name, records[j].Name) < 0
		})
	case models.SortLevelAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Level < records[j].Level
		})
	case models.SortLevelDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Level > records[j].Level
		})
	}
}

// Language returns the locale names are compared in
func (t *Transformer) Language() language.Tag {
	return t.locale()
}

func (t *Transformer) locale() language.Tag {
	if t.Locale == language.Und {
		return DefaultLocale
	}
	return t.Locale
}
