package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/meur/minidex/internal/config"
	"github.com/meur/minidex/internal/dataset"
	"github.com/meur/minidex/internal/logging"
	"github.com/meur/minidex/internal/models"
	"github.com/meur/minidex/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	dbPath := flag.String("db", firstNonEmpty(cfg.Storage.DBPath, "./minidex.db"), "SQLite database path")
	datasetPath := flag.String("dataset", cfg.Dataset.Path, "YAML or JSON catalog file (default: built-in)")
	flag.Parse()

	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer store.Close()

	catalog, err := loadDataset(*datasetPath)
	if err != nil {
		log.Fatal().Err(err).Str("dataset", *datasetPath).Msg("Failed to load dataset")
	}

	incomplete := 0
	for _, r := range catalog.Records {
		if !r.Complete() {
			incomplete++
		}
	}
	if incomplete > 0 {
		log.Warn().Int("count", incomplete).Msg("Dataset has incomplete records, they will be skipped when rendering")
	}

	id, err := store.SaveCatalog(catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to save catalog")
	}

	log.Info().
		Str("id", id).
		Str("name", catalog.Name).
		Int("records", len(catalog.Records)).
		Str("db", *dbPath).
		Msg("Seeding complete")
}

func loadDataset(path string) (*models.Catalog, error) {
	if path == "" {
		return dataset.Builtin(), nil
	}
	return dataset.LoadFile(path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
