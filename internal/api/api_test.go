package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/fitforge/internal/config"
	"github.com/meur/fitforge/internal/fit"
	"github.com/meur/fitforge/internal/models"
	"github.com/meur/fitforge/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()
	store, err := storage.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.BulkCreateGroups(ctx, []models.Group{
		{ID: 25, Name: "Frigate", Category: models.GroupCategoryShip},
		{ID: 55, Name: "Projectile Weapon", Category: models.GroupCategoryModule},
		{ID: 83, Name: "Projectile Ammo", Category: models.GroupCategoryCharge},
		{ID: 329, Name: "Armor Plate", Category: models.GroupCategoryModule},
	}))
	require.NoError(t, store.BulkCreateTypes(ctx, []models.Type{
		{ID: 587, Name: "Rifter", Group: 25},
		{ID: 484, Name: "125mm Gatling AutoCannon I", Group: 55},
		{ID: 179, Name: "Fusion S", Group: 83},
		{ID: 11297, Name: "200mm Steel Plates I", Group: 329},
	}))
	slots := map[int]models.Slot{484: models.SlotHi, 179: models.SlotHi, 11297: models.SlotLo}
	require.NoError(t, store.CreateFit(ctx, &models.StoredFit{
		Killmail: 100, Ship: 587, Cost: 2500000,
		Items: []models.RawItem{
			{ItemTypeID: 179, Flag: 27}, {ItemTypeID: 484, Flag: 27}, {ItemTypeID: 11297, Flag: 11},
		},
		QueryItems: []int{179, 484, 587, 11297},
	}, slots))
	require.NoError(t, store.CreateFit(ctx, &models.StoredFit{
		Killmail: 101, Ship: 587,
		Items:      []models.RawItem{{ItemTypeID: 11297, Flag: 11}},
		QueryItems: []int{587, 11297},
	}, slots))

	cfg := &config.Config{AllowedOrigins: []string{"*"}, CacheMaxAge: 60, FitsLimit: 10}
	return New(store, cfg, zerolog.Nop())
}

func do(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestGetFit(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/Fit?id=100", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "max-age=60", w.Header().Get("Cache-Control"))

	var p models.FitPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, int64(100), p.Killmail)
	assert.Equal(t, int64(2500000), p.Cost)
	assert.Len(t, p.Names, 4)
	assert.Equal(t, models.CategoryCharge, p.Names[179].Category)

	doc := fit.Normalize(p)
	assert.Equal(t, "Rifter", doc.ShipName)
	require.NotNil(t, doc.Slots.Hi[0])
	assert.Equal(t, "Fusion S", doc.Slots.Hi[0].Charge.Name)
}

func TestGetFit_Errors(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/Fit", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/Fit?id=abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/Fit?id=5", nil).Code)
}

func TestGetFitText(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/Fit/text?id=100", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[Rifter]\n200mm Steel Plates I\n\n\n125mm Gatling AutoCannon I, Fusion S\n\n\n", w.Body.String())
}

func TestGetFits(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/Fits", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all models.FitsPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all.Fits, 2)
	assert.Equal(t, int64(101), all.Fits[0].Killmail)
	assert.True(t, all.Filter.Empty())

	w = do(t, s, http.MethodGet, "/api/Fits?ship=587&item=484&item=484&item=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var filtered models.FitsPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered.Fits, 1)
	assert.Equal(t, int64(100), filtered.Fits[0].Killmail)
	require.Len(t, filtered.Filter.Ship, 1)
	assert.Equal(t, "Rifter", filtered.Filter.Ship[0].Name)
	require.Len(t, filtered.Filter.Item, 1)
	assert.Equal(t, 484, filtered.Filter.Item[0].ID)

	docs := fit.NormalizeAll(filtered.Fits)
	assert.Len(t, fit.Summarize(docs[0]).Hi, 1)
}

func TestSearch(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/Search?term=%20RIF%20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Search  string
		Results []models.SearchResult
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "rif", res.Search)
	assert.Equal(t, []models.SearchResult{{Type: "ship", Name: "Rifter", ID: 587}}, res.Results)

	w = do(t, s, http.MethodGet, "/api/Search?term=ri", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Empty(t, res.Results)
}

func TestSavedFits(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/Fit?id=100", nil)
	var p models.FitPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	summary := fit.Summarize(fit.Normalize(p))
	body, err := json.Marshal(summary)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPut, "/api/saved/101", body).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPut, "/api/saved/100", []byte("{")).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/api/saved/100", body).Code)

	w = do(t, s, http.MethodGet, "/api/saved/100", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.FitSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, summary, got)

	w = do(t, s, http.MethodGet, "/api/saved", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.FitSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodDelete, "/api/saved/100", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/api/saved/100", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/saved/100", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/saved/x", nil).Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
