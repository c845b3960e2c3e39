package models

import "strings"

// Record represents one entity shown as a card
type Record struct {
	Name       string   `json:"name" yaml:"name"`
	Categories []string `json:"categories" yaml:"categories"` // 1 or 2 labels, order matters
	Level      int      `json:"level" yaml:"level"`
	Image      string   `json:"image" yaml:"image"` // File name, relative to the catalog image dir
}

// CategoryField returns the categories as one comma-joined string ("Plante,Poison").
func (r Record) CategoryField() string {
	return strings.Join(r.Categories, ",")
}

// Complete reports whether every field a card needs is present
func (r Record) Complete() bool {
	return r.Name != "" && len(r.Categories) > 0 && r.Level > 0 && r.Image != ""
}

// RecordList is a collection of records
type RecordList struct {
	Items      []Record `json:"items"`
	TotalCount int      `json:"total_count"`
}
