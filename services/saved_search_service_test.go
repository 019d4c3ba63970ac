package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/querystate"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSavedSearchService(t *testing.T) (*SavedSearchService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.SavedSearch{}))
	return NewSavedSearchService(db, pageCodec()), db
}

func TestSavedSearchSaveIsIdempotent(t *testing.T) {
	svc, db := newSavedSearchService(t)
	ctx := context.Background()

	first, created, err := svc.Save(ctx, "user-1", "Black sneakers", "size=M&color=black&page=3")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "color=black&size=M", first.Query)

	var filters map[string][]string
	require.NoError(t, json.Unmarshal(first.Filters, &filters))
	assert.Equal(t, map[string][]string{"color": {"black"}, "size": {"M"}}, filters)

	second, created, err := svc.Save(ctx, "user-1", "Weekend", "?color=black&page=7&size=M")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Weekend", second.Name)

	var rows []models.SavedSearch
	require.NoError(t, db.Where("user_id = ?", "user-1").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Weekend", rows[0].Name)
	assert.Equal(t, "color=black&size=M", rows[0].Query)
}

func TestSavedSearchSaveRejectsPageOnly(t *testing.T) {
	svc, db := newSavedSearchService(t)

	_, _, err := svc.Save(context.Background(), "user-1", "Nothing", "page=2")
	assert.ErrorIs(t, err, ErrEmptySearch)

	var count int64
	require.NoError(t, db.Model(&models.SavedSearch{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSavedSearchListFiltersByFacet(t *testing.T) {
	svc, _ := newSavedSearchService(t)
	ctx := context.Background()

	for name, raw := range map[string]string{
		"Sizes":  "size=S&size=M",
		"Colors": "color=red",
		"Both":   "size=L&color=white",
	} {
		_, _, err := svc.Save(ctx, "user-1", name, raw)
		require.NoError(t, err)
	}
	_, _, err := svc.Save(ctx, "user-2", "Other", "size=XL")
	require.NoError(t, err)

	names := func(searches []models.SavedSearch) []string {
		out := make([]string, len(searches))
		for i, s := range searches {
			out[i] = s.Name
		}
		return out
	}

	all, err := svc.List(ctx, "user-1", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sizes", "Colors", "Both"}, names(all))

	sized, err := svc.List(ctx, "user-1", "size")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sizes", "Both"}, names(sized))

	gendered, err := svc.List(ctx, "user-1", "gender")
	require.NoError(t, err)
	assert.Empty(t, gendered)
}

func TestSavedSearchDeleteIsScopedToOwner(t *testing.T) {
	svc, _ := newSavedSearchService(t)
	ctx := context.Background()

	search, _, err := svc.Save(ctx, "user-1", "Reds", "color=red")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "user-2", search.ID), ErrSavedSearchNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "user-1", uuid.New()), ErrSavedSearchNotFound)

	remaining, err := svc.List(ctx, "user-1", "")
	require.NoError(t, err)
	require.Len(t, remaining, 1)

	require.NoError(t, svc.Delete(ctx, "user-1", search.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "user-1", search.ID), ErrSavedSearchNotFound)
}

func TestCanonicalSearchQueryMatchesStoredQuery(t *testing.T) {
	svc, _ := newSavedSearchService(t)

	search, _, err := svc.Save(context.Background(), "user-1", "Mixed", "size=M&page=2&gender=women")
	require.NoError(t, err)

	q, err := CanonicalSearchQuery(querystate.NewCodec(querystate.EncodingRepeated, querystate.DefaultFacets()), "gender=women&size=M")
	require.NoError(t, err)
	assert.Equal(t, q, search.Query)
}
