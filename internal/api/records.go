package api

import (
	"net/http"

	"github.com/meur/minidex/internal/models"
)

// handleGetRecords returns the filtered, sorted records as JSON
func (s *Server) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	items := s.pipeline.View(requestControls{r}.ViewState())

	respondJSON(w, http.StatusOK, models.RecordList{
		Items:      items,
		TotalCount: len(items),
	})
}

// handleGetCategories returns the category colour table
func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.pipeline.Categories())
}

// handleGetCatalogs returns the stored catalog snapshots
func (s *Server) handleGetCatalogs(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		respondError(w, http.StatusNotFound, "Catalog storage is not configured")
		return
	}

	catalogs, err := s.opts.Store.ListCatalogs()
	if err != nil {
		s.opts.Logger.Error().Err(err).Msg("Failed to list catalogs")
		respondError(w, http.StatusInternalServerError, "Failed to fetch catalogs")
		return
	}
	if catalogs == nil {
		catalogs = []models.CatalogSummary{}
	}

	respondJSON(w, http.StatusOK, catalogs)
}
