// Package render turns records into card markup.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/Masterminds/sprig"
	"github.com/rs/zerolog"

	"github.com/meur/minidex/internal/models"
)

// ErrIncompleteRecord is returned for records missing a field the card needs
var ErrIncompleteRecord = errors.New("record data is incomplete")

const cardTemplates = `
{{- define "card" }}
<div class="card" style="background: {{ .Background }};">
    <img src="{{ .Image }}" alt="{{ .Name }}">
    <h2>{{ .Name }}</h2>
    <div>{{ .CategoryLabel }}: {{ join " / " .Categories }}</div>
    <div>{{ .LevelLabel }}: {{ .Level }}</div>
</div>
{{- end }}
{{- define "empty" }}<p class="no-results">{{ . }}</p>{{ end }}`

// cardData is what the card template sees
type cardData struct {
	Name          string
	Categories    []string
	Level         int
	Image         string
	Background    template.CSS
	CategoryLabel string
	LevelLabel    string
}

// Renderer builds card markup for one catalog
type Renderer struct {
	catalog *models.Catalog
	tmpl    *template.Template
	log     zerolog.Logger
}

// New creates a Renderer for the catalog
func New(catalog *models.Catalog, log zerolog.Logger) (*Renderer, error) {
	tmpl, err := template.New("cards").Funcs(sprig.HtmlFuncMap()).Parse(cardTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing card templates: %w", err)
	}
	return &Renderer{catalog: catalog, tmpl: tmpl, log: log}, nil
}

// Background returns the CSS background of a card: the category colour, or an
// even left/right split of both colours for two-category records.
func (r *Renderer) Background(rec models.Record) string {
	if len(rec.Categories) == 2 {
		return fmt.Sprintf("linear-gradient(to right, %s 50%%, %s 50%%)",
			r.catalog.Color(rec.Categories[0]), r.catalog.Color(rec.Categories[1]))
	}
	if len(rec.Categories) == 0 {
		return r.catalog.Color("")
	}
	return r.catalog.Color(rec.Categories[0])
}

// ImagePath returns the image reference emitted for a record
func (r *Renderer) ImagePath(rec models.Record) string {
	return r.catalog.ImageDir + rec.Image
}

// Card renders one record
func (r *Renderer) Card(rec models.Record) (string, error) {
	if !rec.Complete() {
		return "", ErrIncompleteRecord
	}

	var buf bytes.Buffer
	err := r.tmpl.ExecuteTemplate(&buf, "card", cardData{
		Name:       rec.Name,
		Categories: rec.Categories,
		Level:      rec.Level,
		Image:      r.ImagePath(rec),
		// Colours are hex values checked when the catalog is loaded
		Background:    template.CSS(r.Background(rec)),
		CategoryLabel: r.catalog.Labels.Category,
		LevelLabel:    r.catalog.Labels.Level,
	})
	if err != nil {
		return "", fmt.Errorf("rendering card %q: %w", rec.Name, err)
	}
	return buf.String(), nil
}

// Cards renders the whole display region. Records that cannot be rendered are
// logged and left out; an empty list gives the "no results" message.
func (r *Renderer) Cards(records []models.Record) string {
	if len(records) == 0 {
		return r.Empty()
	}

	var sb strings.Builder
	for _, rec := range records {
		card, err := r.Card(rec)
		if err != nil {
			r.log.Warn().
				Err(err).
				Str("name", rec.Name).
				Strs("categories", rec.Categories).
				Int("level", rec.Level).
				Str("image", rec.Image).
				Msg("Skipping record")
			continue
		}
		sb.WriteString(card)
	}
	return sb.String()
}

// Empty returns the fragment shown when nothing matches
func (r *Renderer) Empty() string {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "empty", r.catalog.Labels.Empty); err != nil {
		r.log.Error().Err(err).Msg("Failed to render empty message")
		return ""
	}
	return buf.String()
}
