// Package cli implements the terminal card viewer.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meur/minidex/internal/config"
	"github.com/meur/minidex/internal/dex"
	"github.com/meur/minidex/internal/models"
	"github.com/meur/minidex/internal/render"
	"github.com/meur/minidex/internal/storage"
)

var (
	// Version is set at build time
	Version = "dev"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	out    io.Writer
	log    zerolog.Logger

	search   string
	category string
	sort     string
	width    int
	columns  int
}

// NewApp creates the CLI application for the given config.
func NewApp(cfg *config.Config, out io.Writer, log zerolog.Logger) *App {
	a := &App{config: cfg, out: out, log: log}

	a.root = &cobra.Command{
		Use:   "cards",
		Short: "Browse the catalog as cards in the terminal",
		Long: `Cards prints the catalog as a grid of cards.

Filter by name with --search, by category with --type and order the
result with --sort (name-asc, name-desc, level-asc, level-desc).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd)
		},
	}

	flags := a.root.PersistentFlags()
	flags.StringVar(&a.config.Dataset.Path, "dataset", cfg.Dataset.Path, "YAML or JSON catalog file")
	flags.StringVar(&a.config.Storage.DBPath, "db", cfg.Storage.DBPath, "SQLite database with catalog snapshots")
	flags.StringVar(&a.config.Storage.CatalogID, "catalog", cfg.Storage.CatalogID, "Snapshot ID (default: latest)")

	a.root.Flags().StringVarP(&a.search, "search", "s", "", "Only names containing this text")
	a.root.Flags().StringVarP(&a.category, "type", "t", "", "Only records whose categories contain this text")
	a.root.Flags().StringVar(&a.sort, "sort", "", "Sort order: name-asc, name-desc, level-asc, level-desc")
	a.root.Flags().IntVar(&a.width, "width", render.DefaultCardWidth, "Card width")
	a.root.Flags().IntVar(&a.columns, "columns", render.DefaultColumns, "Cards per row")

	a.root.SetOut(out)
	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.categoriesCmd())
	a.root.AddCommand(a.catalogsCmd())

	return a
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs overrides the command line arguments, used by tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cards %s\n", Version)
		},
	}
}

func (a *App) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and their colours",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.loadCatalog()
			if err != nil {
				return err
			}
			locale, err := a.config.LocaleTag()
			if err != nil {
				return err
			}
			for _, c := range catalog.Categories(locale) {
				swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Color)).Render("   ")
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %s\n", swatch, c.Name, c.Color)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "    %-12s %s\n", "(other)", catalog.Color(""))
			return nil
		},
	}
}

func (a *App) catalogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List stored catalog snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.config.Storage.DBPath == "" {
				return fmt.Errorf("no database configured, use --db")
			}
			store, err := storage.New(a.config.Storage.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			summaries, err := store.ListCatalogs()
			if err != nil {
				return fmt.Errorf("listing catalogs: %w", err)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No catalogs stored.")
				return nil
			}
			for _, s := range summaries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s %3d records  %s\n",
					s.ID, s.Name, s.RecordCount, s.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func (a *App) runList(cmd *cobra.Command) error {
	catalog, err := a.loadCatalog()
	if err != nil {
		return err
	}

	pipeline, err := dex.Build(a.config, catalog, a.log)
	if err != nil {
		return err
	}

	term := render.NewTerminal(catalog, a.width, a.columns, a.log)
	controls := dex.StaticControls{
		Search:   a.search,
		Category: a.category,
		Sort:     models.ParseSortKey(a.sort),
	}
	if a.sort != "" && controls.Sort == models.SortNone {
		a.log.Warn().Str("sort", a.sort).Msg("Unknown sort order, keeping catalog order")
	}

	records := pipeline.View(controls.ViewState())
	fmt.Fprintln(cmd.OutOrStdout(), term.Cards(records))
	return nil
}

func (a *App) loadCatalog() (*models.Catalog, error) {
	if err := a.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var store *storage.Store
	if a.config.Storage.DBPath != "" {
		var err error
		store, err = storage.New(a.config.Storage.DBPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
	}
	return dex.LoadCatalog(a.config, store)
}
