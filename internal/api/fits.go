package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/meur/fitforge/internal/fit"
	"github.com/meur/fitforge/internal/models"
)

// handleGetFit returns one stored fit with its names joined in
func (s *Server) handleGetFit(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.loadFit(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, payload)
}

// handleGetFitText returns a fit in EFT text form
func (s *Server) handleGetFitText(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.loadFit(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fit.RenderText(fit.Normalize(*payload)) + "\n"))
}

func (s *Server) loadFit(w http.ResponseWriter, r *http.Request) (*models.FitPayload, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "missing or invalid fit id")
		return nil, false
	}

	stored, err := s.store.GetFit(r.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Int64("killmail", id).Msg("fetch fit")
		respondError(w, http.StatusInternalServerError, "Failed to fetch fit")
		return nil, false
	}
	if stored == nil {
		respondError(w, http.StatusNotFound, "Fit not found")
		return nil, false
	}

	names, err := s.store.GetNames(r.Context(), fitTypeIDs(*stored))
	if err != nil {
		s.log.Error().Err(err).Int64("killmail", id).Msg("fetch names")
		respondError(w, http.StatusInternalServerError, "Failed to fetch names")
		return nil, false
	}
	p := toPayload(*stored, names)
	return &p, true
}

// handleGetFits returns the newest fits matching the ship and item filters
func (s *Server) handleGetFits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var shipIDs, itemIDs []int
	seen := map[int]bool{}
	if ship, _ := strconv.Atoi(q.Get("ship")); ship > 0 {
		shipIDs = append(shipIDs, ship)
		seen[ship] = true
	}
	for _, v := range q["item"] {
		id, _ := strconv.Atoi(v)
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		itemIDs = append(itemIDs, id)
	}
	filterIDs := append(append([]int{}, shipIDs...), itemIDs...)

	stored, err := s.store.FindFits(r.Context(), filterIDs, s.cfg.FitsLimit)
	if err != nil {
		s.log.Error().Err(err).Ints("filter", filterIDs).Msg("find fits")
		respondError(w, http.StatusInternalServerError, "Failed to fetch fits")
		return
	}

	ids := append([]int{}, filterIDs...)
	for _, f := range stored {
		ids = append(ids, fitTypeIDs(f)...)
	}
	names, err := s.store.GetNames(r.Context(), dedupe(ids))
	if err != nil {
		s.log.Error().Err(err).Msg("fetch names")
		respondError(w, http.StatusInternalServerError, "Failed to fetch names")
		return
	}

	res := models.FitsPayload{
		Filter: models.FilterSet{
			Ship: filterNames(names, shipIDs),
			Item: filterNames(names, itemIDs),
		},
		Fits: make([]models.FitPayload, 0, len(stored)),
	}
	for _, f := range stored {
		res.Fits = append(res.Fits, toPayload(f, names))
	}
	respondJSON(w, http.StatusOK, res)
}

// handleSearch matches type and group names
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	type searchResponse struct {
		Search  string
		Results []models.SearchResult
	}
	term := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("term")))
	if len([]rune(term)) < 3 {
		respondJSON(w, http.StatusOK, searchResponse{Search: term, Results: []models.SearchResult{}})
		return
	}
	results, err := s.store.Search(r.Context(), term, searchLimit)
	if err != nil {
		s.log.Error().Err(err).Str("term", term).Msg("search")
		respondError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	respondJSON(w, http.StatusOK, searchResponse{Search: term, Results: results})
}

// fitTypeIDs lists the hull and every item type of a fit.
func fitTypeIDs(f models.StoredFit) []int {
	ids := []int{f.Ship}
	for _, item := range f.Items {
		ids = append(ids, item.ItemTypeID)
	}
	return dedupe(ids)
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// toPayload attaches the subset of names a fit refers to.
func toPayload(f models.StoredFit, names models.Names) models.FitPayload {
	own := models.Names{}
	for _, id := range fitTypeIDs(f) {
		if info, ok := names.Lookup(id); ok {
			own[id] = info
		}
	}
	return models.FitPayload{
		Killmail: f.Killmail,
		Ship:     f.Ship,
		Cost:     f.Cost,
		Names:    own,
		Items:    f.Items,
	}
}

// filterNames echoes filter ids; unknown ids keep their id with no name.
func filterNames(names models.Names, ids []int) []models.NameInfo {
	var out []models.NameInfo
	for _, id := range ids {
		info, ok := names.Lookup(id)
		if !ok {
			info = models.NameInfo{ID: id}
		}
		out = append(out, info)
	}
	return out
}
