package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prohmpiriya/charity-events/internal/domain"
	"github.com/prohmpiriya/charity-events/internal/repository"
)

var serviceToday = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (CatalogService, *repository.MemoryCatalog) {
	t.Helper()
	catalog := repository.NewSampleCatalog(serviceToday)
	svc := NewCatalogService(catalog, catalog,
		WithClock(func() time.Time { return serviceToday }),
		WithLocation(time.UTC),
	)
	return svc, catalog
}

func eventIDs(events []*domain.Event) []int64 {
	out := make([]int64, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestCatalogService_ListEvents(t *testing.T) {
	svc, _ := newTestService(t)

	events, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{
		repository.SampleFoodDriveID,
		repository.SampleFunRunID,
		repository.SamplePicnicID,
		repository.SampleGalaID,
	}, eventIDs(events))
}

func TestCatalogService_SearchWithoutFiltersEqualsList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	listed, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	searched, err := svc.SearchEvents(ctx, domain.SearchFilter{})
	require.NoError(t, err)

	assert.Equal(t, eventIDs(listed), eventIDs(searched))
}

func TestCatalogService_SearchEvents(t *testing.T) {
	svc, _ := newTestService(t)

	events, err := svc.SearchEvents(context.Background(), domain.SearchFilter{City: "spring"})
	require.NoError(t, err)
	for _, e := range events {
		assert.Equal(t, "Springfield", e.City)
	}
	assert.NotContains(t, eventIDs(events), repository.SampleGalaID)
}

func TestCatalogService_TodayUsesLocation(t *testing.T) {
	catalog := repository.NewSampleCatalog(serviceToday)
	// 20:00 UTC on the 20th is already the 21st in Bangkok, so the Food Drive on the 20th is past
	bangkok := time.FixedZone("ICT", 7*3600)
	svc := NewCatalogService(catalog, catalog,
		WithClock(func() time.Time { return time.Date(2025, 5, 20, 20, 0, 0, 0, time.UTC) }),
		WithLocation(bangkok),
	)

	events, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, eventIDs(events), repository.SampleFoodDriveID)
}

func TestCatalogService_GetEvent(t *testing.T) {
	svc, catalog := newTestService(t)
	ctx := context.Background()

	t.Run("suspended event is still returned", func(t *testing.T) {
		event, err := svc.GetEvent(ctx, "3")
		require.NoError(t, err)
		assert.Equal(t, repository.SampleAuctionID, event.ID)
		assert.True(t, event.IsSuspended)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		_, err := svc.GetEvent(ctx, "999")
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	for _, id := range []string{"abc", "9999999999", "-2147483649"} {
		t.Run("malformed id "+id+" is not found without a query", func(t *testing.T) {
			before := catalog.Queries()
			_, err := svc.GetEvent(ctx, id)
			assert.ErrorIs(t, err, ErrEventNotFound)
			assert.Equal(t, before, catalog.Queries())
		})
	}
}

func TestCatalogService_ListCitiesAndCategories(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cities, err := svc.ListCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Boston", "Portland", "Springfield"}, cities)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 3)
}

func TestCatalogService_StoreErrorsAreWrapped(t *testing.T) {
	svc, catalog := newTestService(t)
	boom := errors.New("connection reset")
	catalog.FailWith(boom)
	ctx := context.Background()

	_, err := svc.ListEvents(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = svc.GetEvent(ctx, "1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrEventNotFound)

	_, err = svc.ListCategories(ctx)
	assert.ErrorIs(t, err, boom)
}
