package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/fitforge/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "fitforge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedCatalog(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.BulkCreateGroups(ctx, []models.Group{
		{ID: 25, Name: "Frigate", Category: models.GroupCategoryShip},
		{ID: 55, Name: "Projectile Weapon", Category: models.GroupCategoryModule},
		{ID: 83, Name: "Projectile Ammo", Category: models.GroupCategoryCharge},
	}))
	require.NoError(t, store.BulkCreateTypes(ctx, []models.Type{
		{ID: 587, Name: "Rifter", Group: 25},
		{ID: 484, Name: "125mm Gatling AutoCannon I", Group: 55},
		{ID: 179, Name: "Fusion S", Group: 83},
		{ID: 99999, Name: "Orphan", Group: 1},
	}))
}

func TestStore_Catalog(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedCatalog(t, store)

	c, err := store.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, c.Groups, 3)
	assert.Len(t, c.Types, 4)
	assert.Equal(t, "rifter", c.Types[587].Lower)

	_, _, ok := c.Type(99999)
	assert.False(t, ok)
	typ, grp, ok := c.Type(179)
	require.True(t, ok)
	assert.Equal(t, "Fusion S", typ.Name)
	assert.True(t, grp.IsCharge())
}

func TestStore_FitsAndNames(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedCatalog(t, store)

	fit := &models.StoredFit{
		Killmail:   100,
		Ship:       587,
		Cost:       1234,
		Items:      []models.RawItem{{ItemTypeID: 484, Flag: 27}, {ItemTypeID: 179, Flag: 27}},
		QueryItems: []int{179, 484, 587},
	}
	slots := map[int]models.Slot{484: models.SlotHi, 179: models.SlotHi}
	require.NoError(t, store.CreateFit(ctx, fit, slots))
	require.NoError(t, store.CreateFit(ctx, &models.StoredFit{
		Killmail: 101, Ship: 587, Items: []models.RawItem{}, QueryItems: []int{587},
	}, nil))

	got, err := store.GetFit(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fit.Items, got.Items)
	assert.Equal(t, fit.QueryItems, got.QueryItems)
	assert.Equal(t, int64(1234), got.Cost)

	missing, err := store.GetFit(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := store.FindFits(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(101), all[0].Killmail)

	withGun, err := store.FindFits(ctx, []int{587, 484}, 10)
	require.NoError(t, err)
	require.Len(t, withGun, 1)
	assert.Equal(t, int64(100), withGun[0].Killmail)

	names, err := store.GetNames(ctx, []int{587, 484, 179, 424242})
	require.NoError(t, err)
	require.Len(t, names, 3)
	assert.Equal(t, models.NameInfo{
		ID: 484, Name: "125mm Gatling AutoCannon I", Category: models.CategoryModule,
		Group: 55, GroupName: "Projectile Weapon", Slot: models.SlotHi,
	}, names[484])
	assert.Equal(t, models.CategoryCharge, names[179].Category)
	assert.Equal(t, models.Slot(""), names[587].Slot)
}

func TestStore_Search(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedCatalog(t, store)

	res, err := store.Search(ctx, "projectile", 50)
	require.NoError(t, err)
	require.Len(t, res, 2)
	for _, r := range res {
		assert.Equal(t, "group", r.Type)
	}

	res, err = store.Search(ctx, "gatling 125mm", 50)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, models.SearchResult{Type: "item", Name: "125mm Gatling AutoCannon I", ID: 484}, res[0])

	res, err = store.Search(ctx, "rift", 50)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "ship", res[0].Type)

	res, err = store.Search(ctx, "orphan", 50)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestStore_SavedFits(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	summary := models.FitSummary{
		Killmail: 7, Ship: 587, Name: "Rifter", Cost: 10,
		Hi: []models.SlotEntry{{ID: 484, Name: "125mm Gatling AutoCannon I", Group: 55}},
	}
	require.NoError(t, store.SaveFit(ctx, "saved-7", summary))

	got, err := store.GetSavedFit(ctx, "saved-7")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, summary, *got)

	summary.Cost = 20
	require.NoError(t, store.SaveFit(ctx, "saved-7", summary))
	list, err := store.ListSavedFits(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(20), list[0].Cost)

	require.NoError(t, store.DeleteSavedFit(ctx, "saved-7"))
	assert.ErrorIs(t, store.DeleteSavedFit(ctx, "saved-7"), ErrNotFound)

	got, err = store.GetSavedFit(ctx, "saved-7")
	require.NoError(t, err)
	assert.Nil(t, got)
}
