package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"

	"github.com/meur/minidex/internal/models"
)

const (
	DefaultCardWidth = 30
	DefaultColumns   = 3
)

// Terminal renders cards as boxes for a terminal.
// Two-category records get a colour bar split in two halves.
type Terminal struct {
	catalog *models.Catalog
	width   int
	columns int
	log     zerolog.Logger

	box   lipgloss.Style
	title lipgloss.Style
	muted lipgloss.Style
}

// NewTerminal creates a terminal renderer. Non-positive sizes use the defaults.
func NewTerminal(catalog *models.Catalog, width, columns int, log zerolog.Logger) *Terminal {
	if width <= 4 {
		width = DefaultCardWidth
	}
	if columns <= 0 {
		columns = DefaultColumns
	}
	return &Terminal{
		catalog: catalog,
		width:   width,
		columns: columns,
		log:     log,
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(width - 2),
		title: lipgloss.NewStyle().Bold(true),
		muted: lipgloss.NewStyle().Faint(true),
	}
}

// Card renders one record
func (t *Terminal) Card(rec models.Record) (string, error) {
	if !rec.Complete() {
		return "", ErrIncompleteRecord
	}

	lines := []string{
		t.title.Render(rec.Name),
		t.colorBar(rec.Categories),
		fmt.Sprintf("%s: %s", t.catalog.Labels.Category, strings.Join(rec.Categories, " / ")),
		fmt.Sprintf("%s: %d", t.catalog.Labels.Level, rec.Level),
		t.muted.Render(t.catalog.ImageDir + rec.Image),
	}
	return t.box.Render(strings.Join(lines, "\n")), nil
}

// Cards lays the records out in rows. Incomplete records are logged and left out.
func (t *Terminal) Cards(records []models.Record) string {
	if len(records) == 0 {
		return t.catalog.Labels.Empty
	}

	var cards []string
	for _, rec := range records {
		card, err := t.Card(rec)
		if err != nil {
			t.log.Warn().
				Err(err).
				Str("name", rec.Name).
				Strs("categories", rec.Categories).
				Int("level", rec.Level).
				Str("image", rec.Image).
				Msg("Skipping record")
			continue
		}
		cards = append(cards, card)
	}

	var rows []string
	for start := 0; start < len(cards); start += t.columns {
		end := min(start+t.columns, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// colorBar is one line filled with the category colours, labels centred.
func (t *Terminal) colorBar(categories []string) string {
	inner := t.width - 4
	if len(categories) == 1 {
		return t.segment(categories[0], inner)
	}
	left := inner / 2
	return t.segment(categories[0], left) + t.segment(categories[1], inner-left)
}

func (t *Terminal) segment(category string, width int) string {
	bg := t.catalog.Color(category)
	return lipgloss.NewStyle().
		Width(width).
		MaxHeight(1).
		Align(lipgloss.Center).
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(textOn(bg))).
		Render(category)
}

// textOn picks black or white text for a background colour
func textOn(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
