package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
	"real-estate-system/storefront/internal/fixtures"
)

func seededStorage(t *testing.T) *Storage {
	t.Helper()
	data, err := fixtures.Load()
	require.NoError(t, err)
	s := NewStorage()
	require.NoError(t, s.Seed(context.Background(), data))
	return s
}

func floatPtr(v float64) *float64 { return &v }

func TestListPropertiesPaginatesAndFilters(t *testing.T) {
	s := seededStorage(t)
	ctx := context.Background()

	page, err := s.ListProperties(ctx, domain.PropertyFilters{}, domain.PageRequest{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page.Properties, 5)
	assert.Equal(t, 14, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)

	page, err = s.ListProperties(ctx, domain.PropertyFilters{MinPrice: floatPtr(1_000_000)}, domain.PageRequest{})
	require.NoError(t, err)
	for _, p := range page.Properties {
		assert.GreaterOrEqual(t, p.Price.Amount, 1_000_000.0)
	}
	assert.Equal(t, domain.DefaultPropertyPageLimit, page.Pagination.Limit)

	page, err = s.ListProperties(ctx, domain.PropertyFilters{Search: "PARIS"}, domain.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Properties, 1)
	assert.Equal(t, "prop-4", page.Properties[0].ID)

	page, err = s.ListProperties(ctx, domain.PropertyFilters{}, domain.PageRequest{Page: 9, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Properties)
}

func TestPropertyLifecycle(t *testing.T) {
	s := seededStorage(t)
	ctx := context.Background()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	created, err := s.CreateProperty(ctx, domain.Property{Name: "New", OwnerID: "owner-1", Price: domain.Price{Amount: 10, Currency: "USD"}})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, fixed, created.CreatedAt)

	created.Name = "Renamed"
	updated, err := s.UpdateProperty(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	got, err := s.GetProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	require.NoError(t, s.DeleteProperty(ctx, created.ID))
	_, err = s.GetProperty(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteProperty(ctx, created.ID), domain.ErrNotFound)

	_, err = s.UpdateProperty(ctx, domain.Property{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteOwnerWithProperties(t *testing.T) {
	s := seededStorage(t)
	ctx := context.Background()

	count, err := s.CountPropertiesByOwner(ctx, "owner-2")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	err = s.DeleteOwner(ctx, "owner-2")
	require.ErrorIs(t, err, domain.ErrOwnerHasProperties)
	var ownerErr *domain.OwnerHasPropertiesError
	require.ErrorAs(t, err, &ownerErr)
	assert.Equal(t, 3, ownerErr.Count)

	lonely, err := s.CreateOwner(ctx, domain.Owner{Name: "Solo", Address: "Nowhere 1"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteOwner(ctx, lonely.ID))
}

func TestListOwnersSearch(t *testing.T) {
	s := seededStorage(t)

	page, err := s.ListOwners(context.Background(), domain.OwnerFilters{Search: "stockholm"}, domain.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Owners, 1)
	assert.Equal(t, "owner-3", page.Owners[0].ID)
	assert.Equal(t, domain.DefaultOwnerPageLimit, page.Pagination.Limit)
}

func TestImagesAndTraces(t *testing.T) {
	s := seededStorage(t)
	ctx := context.Background()

	all, err := s.ListImages(ctx, "prop-2", domain.ImageFilters{})
	require.NoError(t, err)
	enabled, err := s.ListImages(ctx, "prop-2", domain.ImageFilters{EnabledOnly: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Len(t, enabled, 1)

	_, err = s.ListImages(ctx, "missing", domain.ImageFilters{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.GetImage(ctx, "prop-3", "img-2-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	traces, err := s.ListTraces(ctx, "prop-3", domain.TraceQuery{SortBy: domain.TraceSortByValue, Order: domain.SortAsc})
	require.NoError(t, err)
	require.Len(t, traces, 3)
	assert.True(t, traces[0].Value <= traces[1].Value && traces[1].Value <= traces[2].Value)

	traces, err = s.ListTraces(ctx, "prop-3", domain.TraceQuery{})
	require.NoError(t, err)
	assert.True(t, traces[0].DateSale.After(traces[2].DateSale))

	require.NoError(t, s.DeleteProperty(ctx, "prop-3"))
	_, err = s.GetTrace(ctx, "prop-3", traces[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeedReplacesData(t *testing.T) {
	s := seededStorage(t)
	require.NoError(t, s.Seed(context.Background(), port.Dataset{}))

	page, err := s.ListProperties(context.Background(), domain.PropertyFilters{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Properties)
	assert.Equal(t, 0, page.Pagination.TotalPages)
}
