package dataset

import (
	"fmt"
	"os"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/meur/minidex/internal/models"
)

// LoadFile reads a catalog from a YAML or JSON file.
// Fields left out of the file are filled from the built-in catalog defaults.
func LoadFile(path string) (*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var c models.Catalog
	// JSON is a subset of YAML, so one decoder covers both formats
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}

	ApplyDefaults(&c)
	if err := Validate(&c); err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}
	return &c, nil
}

// ApplyDefaults fills the colour table, fallback colour, image dir and labels
// when a catalog does not define them.
func ApplyDefaults(c *models.Catalog) {
	if c.Colors == nil {
		c.Colors = copyColors(typeColors)
	}
	if c.FallbackColor == "" {
		c.FallbackColor = models.DefaultFallbackColor
	}
	if c.ImageDir == "" {
		c.ImageDir = DefaultImageDir
	}

	def := defaultLabels()
	if c.Labels.Category == "" {
		c.Labels.Category = def.Category
	}
	if c.Labels.Level == "" {
		c.Labels.Level = def.Level
	}
	if c.Labels.Empty == "" {
		c.Labels.Empty = def.Empty
	}

	for i := range c.Records {
		for j, cat := range c.Records[i].Categories {
			c.Records[i].Categories[j] = strings.TrimSpace(cat)
		}
	}
}

// Validate checks the colour table. Colours end up inside style attributes,
// so anything that is not a hex colour is rejected.
// Incomplete records are accepted here and skipped when rendering.
func Validate(c *models.Catalog) error {
	if err := checkColor(c.FallbackColor); err != nil {
		return fmt.Errorf("fallback colour: %w", err)
	}
	for name, color := range c.Colors {
		if err := checkColor(color); err != nil {
			return fmt.Errorf("colour for %q: %w", name, err)
		}
	}
	for i, r := range c.Records {
		if len(r.Categories) > 2 {
			return fmt.Errorf("record %d (%s): at most 2 categories, got %d", i, r.Name, len(r.Categories))
		}
	}
	return nil
}

// checkColor accepts "#rgb" and "#rrggbb".
func checkColor(s string) error {
	if len(s) != 4 && len(s) != 7 {
		return fmt.Errorf("%q is not a hex colour", s)
	}
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("%q is not a hex colour: %w", s, err)
	}
	return nil
}
