package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meur/fitforge/internal/fit"
	"github.com/meur/fitforge/internal/models"
	"github.com/meur/fitforge/internal/storage"
)

func savedKey(r *http.Request) (int64, string, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, fit.SavedPrefix + strconv.FormatInt(id, 10), true
}

// handleListSaved returns every saved fit summary
func (s *Server) handleListSaved(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.ListSavedFits(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list saved fits")
		respondError(w, http.StatusInternalServerError, "Failed to fetch saved fits")
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// handleGetSaved returns one saved fit summary
func (s *Server) handleGetSaved(w http.ResponseWriter, r *http.Request) {
	_, key, ok := savedKey(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid fit id")
		return
	}
	summary, err := s.store.GetSavedFit(r.Context(), key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("fetch saved fit")
		respondError(w, http.StatusInternalServerError, "Failed to fetch saved fit")
		return
	}
	if summary == nil {
		respondError(w, http.StatusNotFound, "Saved fit not found")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// handlePutSaved stores a fit summary
func (s *Server) handlePutSaved(w http.ResponseWriter, r *http.Request) {
	id, key, ok := savedKey(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid fit id")
		return
	}
	var summary models.FitSummary
	if err := decodeJSON(r, &summary); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if summary.Killmail != id {
		respondError(w, http.StatusBadRequest, "Killmail does not match fit id")
		return
	}
	if err := s.store.SaveFit(r.Context(), key, summary); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("save fit")
		respondError(w, http.StatusInternalServerError, "Failed to save fit")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// handleDeleteSaved removes a saved fit summary
func (s *Server) handleDeleteSaved(w http.ResponseWriter, r *http.Request) {
	_, key, ok := savedKey(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid fit id")
		return
	}
	err := s.store.DeleteSavedFit(r.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Saved fit not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("delete saved fit")
		respondError(w, http.StatusInternalServerError, "Failed to delete saved fit")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
