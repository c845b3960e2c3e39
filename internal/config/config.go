// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "MINIDEX_"

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Dataset DatasetConfig `toml:"dataset"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	ImagesDir      string   `toml:"images_dir"` // Served under /images/
}

// DatasetConfig selects the catalog to show.
type DatasetConfig struct {
	Path   string `toml:"path"`   // YAML or JSON catalog; empty = built-in or stored
	Locale string `toml:"locale"` // BCP 47 tag used to order names
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath    string `toml:"db_path"`    // Empty disables snapshots
	CatalogID string `toml:"catalog_id"` // Empty = latest snapshot
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "console" or "json"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:*"},
			ImagesDir:      "images",
		},
		Dataset: DatasetConfig{
			Locale: "fr",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	if v := os.Getenv(EnvPrefix + "CONFIG"); v != "" {
		return v
	}
	return "minidex.toml"
}

// Load loads .env, then configuration from the default path.
func Load() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Dataset.Path = expandPath(cfg.Dataset.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvPrefix + "PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPORT: %w", EnvPrefix, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvPrefix + "ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv(EnvPrefix + "IMAGES_DIR"); v != "" {
		cfg.Server.ImagesDir = v
	}

	if v := os.Getenv(EnvPrefix + "DATASET"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv(EnvPrefix + "LOCALE"); v != "" {
		cfg.Dataset.Locale = v
	}

	if v := os.Getenv(EnvPrefix + "DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv(EnvPrefix + "CATALOG_ID"); v != "" {
		cfg.Storage.CatalogID = v
	}

	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	if c.Storage.CatalogID != "" && c.Storage.DBPath == "" {
		return errors.New("catalog_id requires db_path")
	}
	return nil
}

// LocaleTag parses the dataset locale.
func (c *Config) LocaleTag() (language.Tag, error) {
	tag, err := language.Parse(c.Dataset.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", c.Dataset.Locale, err)
	}
	return tag, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}
