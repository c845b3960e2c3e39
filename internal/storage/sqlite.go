package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/minidex/internal/models"
)

// Store keeps catalog snapshots in SQLite
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS catalogs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			fallback_color TEXT NOT NULL,
			image_dir TEXT NOT NULL,
			labels TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS category_colors (
			catalog_id TEXT NOT NULL REFERENCES catalogs(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			color TEXT NOT NULL,
			PRIMARY KEY (catalog_id, category)
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			catalog_id TEXT NOT NULL REFERENCES catalogs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			categories TEXT NOT NULL,
			level INTEGER NOT NULL,
			image TEXT NOT NULL,
			PRIMARY KEY (catalog_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_catalogs_created ON catalogs(created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// --- Catalogs ---

// SaveCatalog stores a snapshot of the catalog and returns its new ID
func (s *Store) SaveCatalog(c *models.Catalog) (string, error) {
	id := uuid.New().String()
	labels, err := json.Marshal(c.Labels)
	if err != nil {
		return "", fmt.Errorf("encoding labels: %w", err)
	}
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO catalogs (id, name, fallback_color, image_dir, labels, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, c.Name, c.FallbackColor, c.ImageDir, string(labels), now)
	if err != nil {
		return "", fmt.Errorf("inserting catalog: %w", err)
	}

	colorStmt, err := tx.Prepare(`
		INSERT INTO category_colors (catalog_id, category, color) VALUES (?, ?, ?)
	`)
	if err != nil {
		return "", err
	}
	defer colorStmt.Close()

	for category, color := range c.Colors {
		if _, err := colorStmt.Exec(id, category, color); err != nil {
			return "", fmt.Errorf("inserting colour for %q: %w", category, err)
		}
	}

	recordStmt, err := tx.Prepare(`
		INSERT INTO records (catalog_id, position, name, categories, level, image)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", err
	}
	defer recordStmt.Close()

	for i, r := range c.Records {
		_, err := recordStmt.Exec(id, i, r.Name, r.CategoryField(), r.Level, r.Image)
		if err != nil {
			return "", fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetCatalog returns a catalog snapshot by ID, or nil if it does not exist
func (s *Store) GetCatalog(id string) (*models.Catalog, error) {
	return s.loadCatalog(s.db.QueryRow(`
		SELECT id, name, fallback_color, image_dir, labels, created_at
		FROM catalogs WHERE id = ?
	`, id))
}

// LatestCatalog returns the most recently saved catalog, or nil if there is none
func (s *Store) LatestCatalog() (*models.Catalog, error) {
	return s.loadCatalog(s.db.QueryRow(`
		SELECT id, name, fallback_color, image_dir, labels, created_at
		FROM catalogs ORDER BY created_at DESC, rowid DESC LIMIT 1
	`))
}

// ListCatalogs returns summaries of all snapshots, newest first
func (s *Store) ListCatalogs() ([]models.CatalogSummary, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.created_at, COUNT(r.position)
		FROM catalogs c LEFT JOIN records r ON r.catalog_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.CatalogSummary
	for rows.Next() {
		var cs models.CatalogSummary
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.CreatedAt, &cs.RecordCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, cs)
	}
	return summaries, rows.Err()
}

func (s *Store) loadCatalog(row *sql.Row) (*models.Catalog, error) {
	var c models.Catalog
	var labels string

	err := row.Scan(&c.ID, &c.Name, &c.FallbackColor, &c.ImageDir, &labels, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(labels), &c.Labels); err != nil {
		return nil, fmt.Errorf("decoding labels: %w", err)
	}

	if c.Colors, err = s.getColors(c.ID); err != nil {
		return nil, err
	}
	if c.Records, err = s.getRecords(c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) getColors(catalogID string) (map[string]string, error) {
	rows, err := s.db.Query(`
		SELECT category, color FROM category_colors WHERE catalog_id = ?
	`, catalogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colors := make(map[string]string)
	for rows.Next() {
		var category, color string
		if err := rows.Scan(&category, &color); err != nil {
			return nil, err
		}
		colors[category] = color
	}
	return colors, rows.Err()
}

func (s *Store) getRecords(catalogID string) ([]models.Record, error) {
	rows, err := s.db.Query(`
		SELECT name, categories, level, image
		FROM records WHERE catalog_id = ? ORDER BY position
	`, catalogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		var categories string
		if err := rows.Scan(&r.Name, &categories, &r.Level, &r.Image); err != nil {
			return nil, err
		}
		r.Categories = splitCategories(categories)
		records = append(records, r)
	}
	return records, rows.Err()
}

func splitCategories(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// DeleteCatalog removes a snapshot and everything attached to it
func (s *Store) DeleteCatalog(id string) error {
	_, err := s.db.Exec(`DELETE FROM catalogs WHERE id = ?`, id)
	return err
}
