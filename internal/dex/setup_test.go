package dex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/minidex/internal/config"
	"github.com/meur/minidex/internal/dataset"
	"github.com/meur/minidex/internal/models"
	"github.com/meur/minidex/internal/storage"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "minidex.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadCatalog_Builtin(t *testing.T) {
	c, err := LoadCatalog(config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Mini Pokédex", c.Name)

	// Empty store falls back to the built-in catalog
	c, err = LoadCatalog(config.Default(), newStore(t))
	require.NoError(t, err)
	assert.Len(t, c.Records, 17)
}

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: File dex\nrecords: []\n"), 0o644))

	cfg := config.Default()
	cfg.Dataset.Path = path

	c, err := LoadCatalog(cfg, newStore(t))
	require.NoError(t, err)
	assert.Equal(t, "File dex", c.Name)
}

func TestLoadCatalog_Store(t *testing.T) {
	store := newStore(t)

	small := dataset.Builtin()
	small.Name = "Stored"
	small.Records = small.Records[:2]
	id, err := store.SaveCatalog(small)
	require.NoError(t, err)

	c, err := LoadCatalog(config.Default(), store)
	require.NoError(t, err)
	assert.Equal(t, "Stored", c.Name)
	assert.Len(t, c.Records, 2)

	cfg := config.Default()
	cfg.Storage.CatalogID = id
	c, err = LoadCatalog(cfg, store)
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)

	cfg.Storage.CatalogID = "missing"
	_, err = LoadCatalog(cfg, store)
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	cfg := config.Default()
	p, err := Build(cfg, dataset.Builtin(), zerolog.Nop())
	require.NoError(t, err)

	got := p.View(models.ViewState{Search: "pi", Sort: models.SortNameAsc})
	require.Len(t, got, 1)
	assert.Equal(t, "Pikachu", got[0].Name)

	cfg.Dataset.Locale = "!!"
	_, err = Build(cfg, dataset.Builtin(), zerolog.Nop())
	assert.Error(t, err)
}
