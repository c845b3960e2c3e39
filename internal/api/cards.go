package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/meur/minidex/internal/models"
)

//go:embed templates/index.html
var templateFS embed.FS

// requestControls reads the three inputs from the query string:
// q (search), type (category, empty = all) and sort.
type requestControls struct {
	r *http.Request
}

func (c requestControls) ViewState() models.ViewState {
	q := c.r.URL.Query()
	return models.ViewState{
		Search:   q.Get("q"),
		Category: q.Get("type"),
		Sort:     models.ParseSortKey(q.Get("sort")),
	}
}

// responseDisplay writes the display region as the response body
type responseDisplay struct {
	w http.ResponseWriter
}

func (d responseDisplay) SetDisplayContent(markup string) {
	d.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	d.w.WriteHeader(http.StatusOK)
	d.w.Write([]byte(markup))
}

type sortOption struct {
	Key   models.SortKey
	Label string
}

var sortOptions = []sortOption{
	{models.SortNone, "Trier par"},
	{models.SortNameAsc, "Nom (A-Z)"},
	{models.SortNameDesc, "Nom (Z-A)"},
	{models.SortLevelAsc, "Niveau (croissant)"},
	{models.SortLevelDesc, "Niveau (décroissant)"},
}

type pageData struct {
	Title      string
	State      models.ViewState
	Categories []models.CategoryColor
	Sorts      []sortOption
	Cards      template.HTML
}

// handleIndex renders the full page with the initial card view
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	catalog := s.pipeline.Catalog()
	state := requestControls{r}.ViewState()

	var buf bytes.Buffer
	err := s.page.Execute(&buf, pageData{
		Title:      catalog.Name,
		State:      state,
		Categories: s.pipeline.Categories(),
		Sorts:      sortOptions,
		// Produced by the card templates, which escape record fields
		Cards: template.HTML(s.pipeline.Run(state)),
	})
	if err != nil {
		s.opts.Logger.Error().Err(err).Msg("Failed to render page")
		respondError(w, http.StatusInternalServerError, "Failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// handleCards re-renders the display region for the current input values
func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	s.pipeline.Bind(requestControls{r}, responseDisplay{w}).OnInputChanged()
}
