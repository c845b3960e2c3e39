package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/meur/minidex/internal/cli"
	"github.com/meur/minidex/internal/config"
	"github.com/meur/minidex/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}

	return cli.NewApp(cfg, os.Stdout, log.Logger).Execute()
}
