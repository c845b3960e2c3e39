package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meur/minidex/internal/api"
	"github.com/meur/minidex/internal/config"
	"github.com/meur/minidex/internal/dex"
	"github.com/meur/minidex/internal/logging"
	"github.com/meur/minidex/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Parse flags
	port := flag.Int("port", cfg.Server.Port, "Server port")
	dbPath := flag.String("db", cfg.Storage.DBPath, "SQLite database with catalog snapshots")
	catalogID := flag.String("catalog", cfg.Storage.CatalogID, "Snapshot ID to serve (default: latest)")
	datasetPath := flag.String("dataset", cfg.Dataset.Path, "YAML or JSON catalog file")
	imagesDir := flag.String("images", cfg.Server.ImagesDir, "Directory served under /images/")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Storage.DBPath = *dbPath
	cfg.Storage.CatalogID = *catalogID
	cfg.Dataset.Path = *datasetPath
	cfg.Server.ImagesDir = *imagesDir
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	// Initialize storage
	var store *storage.Store
	if cfg.Storage.DBPath != "" {
		store, err = storage.New(cfg.Storage.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize storage")
		}
		defer store.Close()
	}

	catalog, err := dex.LoadCatalog(cfg, store)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}

	pipeline, err := dex.Build(cfg, catalog, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build card pipeline")
	}

	// Create router
	handler, err := api.New(pipeline, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ImagesDir:      cfg.Server.ImagesDir,
		Store:          store,
		Logger:         log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handler,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().
			Str("addr", "http://localhost"+cfg.Addr()).
			Str("catalog", catalog.Name).
			Int("records", len(catalog.Records)).
			Msg("Minidex starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-done
	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
}
