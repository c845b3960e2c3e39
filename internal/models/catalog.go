package models

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultFallbackColor is used for categories missing from the colour table
const DefaultFallbackColor = "#ccc"

// Catalog is the fixed dataset rendered by the card view.
// It is read-only once loaded.
type Catalog struct {
	ID            string            `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string            `json:"name" yaml:"name"`
	Records       []Record          `json:"records" yaml:"records"`
	Colors        map[string]string `json:"colors" yaml:"colors"` // Category -> CSS colour
	FallbackColor string            `json:"fallback_color" yaml:"fallback_color"`
	ImageDir      string            `json:"image_dir" yaml:"image_dir"` // Prefix for Record.Image
	Labels        Labels            `json:"labels" yaml:"labels"`
	CreatedAt     time.Time         `json:"created_at,omitempty" yaml:"-"`
}

// Labels holds the texts printed on cards
type Labels struct {
	Category string `json:"category" yaml:"category"`
	Level    string `json:"level" yaml:"level"`
	Empty    string `json:"empty" yaml:"empty"` // Shown when nothing matches
}

// CategoryColor is one entry of the colour table
type CategoryColor struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Color returns the colour for a category, or the fallback colour.
// Surrounding spaces in the label are ignored.
func (c *Catalog) Color(category string) string {
	if color, ok := c.Colors[strings.TrimSpace(category)]; ok && color != "" {
		return color
	}
	if c.FallbackColor == "" {
		return DefaultFallbackColor
	}
	return c.FallbackColor
}

// Categories returns the colour table sorted by category name in the given locale
func (c *Catalog) Categories(locale language.Tag) []CategoryColor {
	out := make([]CategoryColor, 0, len(c.Colors))
	for name, color := range c.Colors {
		out = append(out, CategoryColor{Name: name, Color: color})
	}
	col := collate.New(locale)
	sort.Slice(out, func(i, j int) bool {
		if n := col.CompareString(out[i].Name, out[j].Name); n != 0 {
			return n < 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// CatalogSummary is a lightweight version for listings
type CatalogSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RecordCount int       `json:"record_count"`
	CreatedAt   time.Time `json:"created_at"`
}
