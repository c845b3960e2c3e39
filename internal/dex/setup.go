package dex

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/meur/minidex/internal/config"
	"github.com/meur/minidex/internal/dataset"
	"github.com/meur/minidex/internal/models"
	"github.com/meur/minidex/internal/render"
	"github.com/meur/minidex/internal/storage"
	"github.com/meur/minidex/internal/view"
)

// LoadCatalog picks the catalog to show: the dataset file when configured,
// then a stored snapshot when a store is given, then the built-in catalog.
func LoadCatalog(cfg *config.Config, store *storage.Store) (*models.Catalog, error) {
	if cfg.Dataset.Path != "" {
		return dataset.LoadFile(cfg.Dataset.Path)
	}

	if store != nil {
		var c *models.Catalog
		var err error
		if cfg.Storage.CatalogID != "" {
			c, err = store.GetCatalog(cfg.Storage.CatalogID)
		} else {
			c, err = store.LatestCatalog()
		}
		if err != nil {
			return nil, fmt.Errorf("loading stored catalog: %w", err)
		}
		if c == nil && cfg.Storage.CatalogID != "" {
			return nil, fmt.Errorf("catalog %s not found", cfg.Storage.CatalogID)
		}
		if c != nil {
			dataset.ApplyDefaults(c)
			if err := dataset.Validate(c); err != nil {
				return nil, fmt.Errorf("invalid stored catalog %s: %w", c.ID, err)
			}
			return c, nil
		}
	}

	return dataset.Builtin(), nil
}

// Build creates the pipeline for a catalog using the configured locale
func Build(cfg *config.Config, catalog *models.Catalog, log zerolog.Logger) (*Pipeline, error) {
	locale, err := cfg.LocaleTag()
	if err != nil {
		return nil, err
	}

	r, err := render.New(catalog, log)
	if err != nil {
		return nil, err
	}

	return NewPipeline(catalog, view.New(locale), r), nil
}
