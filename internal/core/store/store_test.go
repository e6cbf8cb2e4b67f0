package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"real-estate-system/storefront/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return New(Options{CacheTTL: 5 * time.Minute, Clock: clock.Now}), clock
}

func property(id string, amount float64, status domain.PropertyStatus) domain.Property {
	return domain.Property{
		ID:     id,
		Name:   "Property " + id,
		Price:  domain.Price{Amount: amount, Currency: "USD"},
		Type:   domain.PropertyTypeApartment,
		Status: status,
	}
}

func pageOf(total int, props ...domain.Property) domain.ReadResult[domain.PropertyPage] {
	return domain.ReadResult[domain.PropertyPage]{Value: domain.PropertyPage{
		Properties: props,
		Pagination: domain.NewPagination(1, 12, total),
	}}
}

func ids(props []domain.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func TestFetchReplacesEntitiesWholesale(t *testing.T) {
	s, _ := newTestStore()

	gen := s.BeginPropertiesFetch()
	require.True(t, s.ApplyPropertiesResult(gen, pageOf(3,
		property("a", 10, domain.PropertyStatusAvailable),
		property("b", 20, domain.PropertyStatusSold),
		property("c", 30, domain.PropertyStatusAvailable),
	), ""))

	gen = s.BeginPropertiesFetch()
	require.True(t, s.ApplyPropertiesResult(gen, pageOf(2,
		property("c", 31, domain.PropertyStatusAvailable),
		property("d", 40, domain.PropertyStatusAvailable),
	), ""))

	assert.Equal(t, []string{"c", "d"}, ids(s.SelectAllProperties()))
	_, ok := s.SelectPropertyByID("a")
	assert.False(t, ok)
	c, ok := s.SelectPropertyByID("c")
	require.True(t, ok)
	assert.Equal(t, 31.0, c.Price.Amount)
	assert.False(t, s.SelectIsLoading())
}

func TestDuplicateIDsKeepFirstPosition(t *testing.T) {
	s, _ := newTestStore()
	gen := s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, pageOf(3,
		property("a", 10, domain.PropertyStatusAvailable),
		property("b", 20, domain.PropertyStatusAvailable),
		property("a", 15, domain.PropertyStatusAvailable),
	), "")

	assert.Equal(t, []string{"a", "b"}, ids(s.SelectAllProperties()))
	a, _ := s.SelectPropertyByID("a")
	assert.Equal(t, 15.0, a.Price.Amount)
}

func TestExpensiveFilterIgnoresInsertionOrder(t *testing.T) {
	s, _ := newTestStore()
	gen := s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, pageOf(4,
		property("cheap", 500_000, domain.PropertyStatusAvailable),
		property("edge", 1_000_000, domain.PropertyStatusAvailable),
		property("lux1", 2_500_000, domain.PropertyStatusSold),
		property("lux2", 1_000_001, domain.PropertyStatusAvailable),
	), "")

	require.NoError(t, s.SetFilter(FilterExpensive))

	assert.Equal(t, []string{"lux1", "lux2"}, ids(s.SelectFilteredProperties()))
	for _, p := range s.SelectFilteredProperties() {
		assert.Greater(t, p.Price.Amount, 1_000_000.0)
	}

	require.NoError(t, s.SetFilter(FilterAvailable))
	assert.Equal(t, []string{"cheap", "edge", "lux2"}, ids(s.SelectFilteredProperties()))

	assert.Error(t, s.SetFilter("luxury"))
	assert.Equal(t, FilterAvailable, s.SelectFilter())
}

func TestPaginationSelectorsDefaults(t *testing.T) {
	s, _ := newTestStore()
	assert.Nil(t, s.SelectPagination())
	assert.Equal(t, 1, s.SelectCurrentPage())
	assert.Equal(t, 0, s.SelectTotalPages())

	gen := s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, domain.ReadResult[domain.PropertyPage]{Value: domain.PropertyPage{
		Properties: []domain.Property{},
		Pagination: domain.NewPagination(3, 12, 40),
	}}, "")

	assert.Equal(t, 3, s.SelectCurrentPage())
	assert.Equal(t, 4, s.SelectTotalPages())
}

func TestClearSearchFiltersRestoresInitialValue(t *testing.T) {
	s, _ := newTestStore()
	initial := s.SelectSearchFilters()

	search := "x"
	min := 100.0
	s.SetSearchFilters(SearchFiltersPatch{Search: &search})
	s.SetSearchFilters(SearchFiltersPatch{MinPrice: &min})

	got := s.SelectSearchFilters()
	assert.Equal(t, "x", got.Search)
	require.NotNil(t, got.MinPrice)
	assert.Equal(t, 100.0, *got.MinPrice)

	s.ClearSearchFilters()
	assert.Equal(t, initial, s.SelectSearchFilters())
}

func TestSearchFiltersRecomputeView(t *testing.T) {
	s, _ := newTestStore()
	gen := s.BeginPropertiesFetch()
	sea := property("a", 10, domain.PropertyStatusAvailable)
	sea.Location.City = "Seaside"
	s.ApplyPropertiesResult(gen, pageOf(2, sea, property("b", 20, domain.PropertyStatusAvailable)), "")

	search := "SEAside"
	s.SetSearchFilters(SearchFiltersPatch{Search: &search})
	assert.Equal(t, []string{"a"}, ids(s.SelectFilteredProperties()))
}

func TestCacheFreshnessAndTTL(t *testing.T) {
	s, clock := newTestStore()
	assert.False(t, s.SelectIsCacheValid())

	gen := s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, pageOf(1, property("a", 10, domain.PropertyStatusAvailable)), "")
	assert.True(t, s.SelectIsCacheValid())

	clock.Advance(4 * time.Minute)
	assert.True(t, s.SelectIsCacheValid())

	clock.Advance(time.Minute)
	assert.False(t, s.SelectIsCacheValid())
}

func TestFilterChangeKeepsCacheOnlyWhenCovered(t *testing.T) {
	s, _ := newTestStore()

	gen := s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, pageOf(2,
		property("a", 2_000_000, domain.PropertyStatusAvailable),
		property("b", 20, domain.PropertyStatusSold),
	), "")

	require.NoError(t, s.SetFilter(FilterExpensive))
	assert.True(t, s.SelectIsCacheValid(), "full unfiltered fetch covers every predicate")

	partial, _ := newTestStore()
	gen = partial.BeginPropertiesFetch()
	partial.ApplyPropertiesResult(gen, pageOf(50,
		property("a", 2_000_000, domain.PropertyStatusAvailable),
	), "")

	require.NoError(t, partial.SetFilter(FilterExpensive))
	assert.False(t, partial.SelectIsCacheValid())

	require.NoError(t, partial.SetFilter(FilterAll))
	assert.False(t, partial.SelectIsCacheValid(), "stale flag survives until the next fetch")
}

func TestFailedReadAppliesFallbackAndKeepsCacheStale(t *testing.T) {
	s, _ := newTestStore()
	readErr := domain.NewNetworkError("connection refused", nil)

	gen := s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, domain.ReadResult[domain.PropertyPage]{Value: domain.EmptyPropertyPage(), Err: readErr}, "")

	assert.Empty(t, s.SelectAllProperties())
	assert.Same(t, readErr, s.SelectError())
	assert.False(t, s.SelectIsCacheValid())
	assert.Equal(t, 1, s.SelectCurrentPage())
}

func TestStaleListResponseIsDiscarded(t *testing.T) {
	s, _ := newTestStore()

	first := s.BeginPropertiesFetch()
	second := s.BeginPropertiesFetch()

	require.True(t, s.ApplyPropertiesResult(second, pageOf(1, property("new", 1, domain.PropertyStatusAvailable)), ""))
	assert.False(t, s.ApplyPropertiesResult(first, pageOf(1, property("old", 1, domain.PropertyStatusAvailable)), ""))

	assert.Equal(t, []string{"new"}, ids(s.SelectAllProperties()))
}

func TestDetailFetch(t *testing.T) {
	s, _ := newTestStore()

	gen := s.BeginPropertyDetail()
	assert.True(t, s.SelectIsLoading())
	p := property("a", 10, domain.PropertyStatusAvailable)
	require.True(t, s.ApplyPropertyDetail(gen, domain.ReadResult[*domain.Property]{Value: &p}))

	selected := s.SelectSelectedProperty()
	require.NotNil(t, selected)
	assert.Equal(t, "a", selected.ID)
	assert.False(t, s.SelectIsLoading())

	gen = s.BeginPropertyDetail()
	notFound := errors.New("not found")
	s.ApplyPropertyDetail(gen, domain.ReadResult[*domain.Property]{Err: notFound})
	assert.Nil(t, s.SelectSelectedProperty())
	assert.Equal(t, notFound, s.SelectError())
}

func TestDetailLoadKeepsListError(t *testing.T) {
	s, _ := newTestStore()
	listErr := domain.NewNetworkError("connection refused", nil)

	gen := s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, domain.ReadResult[domain.PropertyPage]{Value: domain.EmptyPropertyPage(), Err: listErr}, "")

	detail := s.BeginPropertyDetail()
	assert.Same(t, listErr, s.SelectError())
	p := property("a", 10, domain.PropertyStatusAvailable)
	require.True(t, s.ApplyPropertyDetail(detail, domain.ReadResult[*domain.Property]{Value: &p}))
	assert.Same(t, listErr, s.SelectError())

	detailErr := errors.New("not found")
	detail = s.BeginPropertyDetail()
	s.ApplyPropertyDetail(detail, domain.ReadResult[*domain.Property]{Err: detailErr})
	assert.Same(t, listErr, s.SelectError())

	gen = s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, pageOf(1, p), "")
	assert.Same(t, detailErr, s.SelectError())

	detail = s.BeginPropertyDetail()
	assert.NoError(t, s.SelectError())
	s.ApplyPropertyDetail(detail, domain.ReadResult[*domain.Property]{Value: &p})
	assert.NoError(t, s.SelectError())
}

func TestUpsertAndRemoveMarkCacheStale(t *testing.T) {
	s, _ := newTestStore()
	gen := s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, pageOf(1, property("a", 10, domain.PropertyStatusAvailable)), "")
	require.True(t, s.SelectIsCacheValid())

	s.UpsertProperty(property("b", 2_000_000, domain.PropertyStatusAvailable))
	assert.Equal(t, []string{"a", "b"}, ids(s.SelectAllProperties()))
	assert.False(t, s.SelectIsCacheValid())

	s.RemoveProperty("a")
	assert.Equal(t, []string{"b"}, ids(s.SelectFilteredProperties()))
}

func TestSelectorsReturnCopies(t *testing.T) {
	s, _ := newTestStore()
	p := property("a", 10, domain.PropertyStatusAvailable)
	p.Features = []string{"pool"}
	gen := s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, pageOf(1, p), "")

	got := s.SelectAllProperties()
	got[0].Features[0] = "garage"

	again, _ := s.SelectPropertyByID("a")
	assert.Equal(t, []string{"pool"}, again.Features)
}

func TestSelectPaginatedProperties(t *testing.T) {
	s, _ := newTestStore()
	gen := s.BeginPropertiesFetch()
	s.ApplyPropertiesResult(gen, pageOf(5,
		property("a", 1, domain.PropertyStatusAvailable),
		property("b", 2, domain.PropertyStatusAvailable),
		property("c", 3, domain.PropertyStatusAvailable),
		property("d", 4, domain.PropertyStatusAvailable),
		property("e", 5, domain.PropertyStatusAvailable),
	), "")

	assert.Equal(t, []string{"c", "d"}, ids(s.SelectPaginatedProperties(2, 2)))
	assert.Equal(t, []string{"e"}, ids(s.SelectPaginatedProperties(3, 2)))
	assert.Empty(t, s.SelectPaginatedProperties(4, 2))
}

func TestConcurrentActionsAreSerialized(t *testing.T) {
	s, _ := newTestStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			gen := s.BeginPropertiesFetch()
			s.ApplyPropertiesResult(gen, pageOf(1, property("a", float64(i), domain.PropertyStatusAvailable)), "")
		}(i)
		go func() {
			defer wg.Done()
			_ = s.SetFilter(FilterExpensive)
			_ = s.SelectFilteredProperties()
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, len(s.SelectAllProperties()), 1)
}
