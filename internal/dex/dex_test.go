package dex

import (
	"io"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/meur/minidex/internal/dataset"
	"github.com/meur/minidex/internal/models"
	"github.com/meur/minidex/internal/render"
	"github.com/meur/minidex/internal/view"
)

// recordingDisplay keeps every write it receives
type recordingDisplay struct {
	writes []string
}

func (d *recordingDisplay) SetDisplayContent(markup string) {
	d.writes = append(d.writes, markup)
}

// mutableControls mimics input widgets whose values change between events
type mutableControls struct {
	state models.ViewState
}

func (c *mutableControls) ViewState() models.ViewState {
	return c.state
}

func newPipeline(t *testing.T, c *models.Catalog) *Pipeline {
	t.Helper()
	r, err := render.New(c, zerolog.New(io.Discard))
	require.NoError(t, err)
	return NewPipeline(c, view.New(language.French), r)
}

func cardNames(t *testing.T, markup string) []string {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc.Find("div.card h2").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
}

func TestOnInputChanged_ReplacesDisplay(t *testing.T) {
	p := newPipeline(t, dataset.Builtin())
	controls := &mutableControls{}
	display := &recordingDisplay{}
	b := p.Bind(controls, display)

	b.OnInputChanged()
	require.Len(t, display.writes, 1)
	assert.Len(t, cardNames(t, display.writes[0]), 17)

	controls.state = models.ViewState{Search: "RAI", Sort: models.SortNameAsc}
	b.OnInputChanged()
	require.Len(t, display.writes, 2)
	assert.Equal(t, []string{"Raichu"}, cardNames(t, display.writes[1]))

	controls.state = models.ViewState{Category: "Eau", Sort: models.SortLevelAsc}
	b.OnInputChanged()
	require.Len(t, display.writes, 3)
	assert.Equal(t, []string{"Magicarpe", "Carapuce", "Lokhlass", "Tortank"}, cardNames(t, display.writes[2]))
}

func TestOnInputChanged_NoMatch(t *testing.T) {
	p := newPipeline(t, dataset.Builtin())

	var got string
	p.Bind(StaticControls{Search: "Ombre"}, DisplayFunc(func(m string) { got = m })).OnInputChanged()

	assert.NotEmpty(t, got)
	assert.Contains(t, got, dataset.DefaultEmptyMessage)
	assert.Empty(t, cardNames(t, got))
}

func TestRun_Idempotent(t *testing.T) {
	p := newPipeline(t, dataset.Builtin())
	state := models.ViewState{Search: "o", Category: "Poison", Sort: models.SortNameDesc}

	assert.Equal(t, p.Run(state), p.Run(state))
}

func TestRun_LevelScenario(t *testing.T) {
	c := dataset.Builtin()
	c.Records = []models.Record{
		{Name: "Magicarpe", Categories: []string{"Eau"}, Level: 5, Image: "magicarpe.png"},
		{Name: "Mewtwo", Categories: []string{"Psy"}, Level: 70, Image: "mewtwo.png"},
		{Name: "Pikachu", Categories: []string{"Électrique"}, Level: 35, Image: "pikachu.png"},
	}
	p := newPipeline(t, c)

	assert.Equal(t, []string{"Magicarpe", "Pikachu", "Mewtwo"}, cardNames(t, p.Run(models.ViewState{Sort: models.SortLevelAsc})))
	assert.Equal(t, []string{"Mewtwo", "Pikachu", "Magicarpe"}, cardNames(t, p.Run(models.ViewState{Sort: models.SortLevelDesc})))
}

func TestRun_MalformedRecordSkipped(t *testing.T) {
	c := dataset.Builtin()
	c.Records = append([]models.Record{{Categories: []string{"Eau"}, Level: 3, Image: "nameless.png"}}, c.Records...)
	p := newPipeline(t, c)

	markup := p.Run(models.ViewState{})
	assert.Len(t, cardNames(t, markup), 17)
	assert.NotContains(t, markup, "nameless.png")
}

func TestView_DoesNotMutateCatalog(t *testing.T) {
	c := dataset.Builtin()
	p := newPipeline(t, c)

	_ = p.View(models.ViewState{Sort: models.SortNameDesc})
	assert.Equal(t, "Pikachu", p.Catalog().Records[0].Name)
	assert.Equal(t, "Mewtwo", p.Catalog().Records[16].Name)
}
