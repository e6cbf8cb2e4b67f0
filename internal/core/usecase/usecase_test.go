package usecase

import (
	"context"
	"testing"
	"time"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPropertyRepo struct {
	mock.Mock
}

func (m *mockPropertyRepo) FindAll(ctx context.Context, filters domain.PropertyFilters, page domain.PageRequest) domain.ReadResult[domain.PropertyPage] {
	return m.Called(ctx, filters, page).Get(0).(domain.ReadResult[domain.PropertyPage])
}

func (m *mockPropertyRepo) FindByID(ctx context.Context, id string) domain.ReadResult[*domain.Property] {
	return m.Called(ctx, id).Get(0).(domain.ReadResult[*domain.Property])
}

func (m *mockPropertyRepo) Create(ctx context.Context, p domain.Property) (*domain.Property, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(*domain.Property)
	return created, args.Error(1)
}

func (m *mockPropertyRepo) Update(ctx context.Context, id string, p domain.Property) (*domain.Property, error) {
	args := m.Called(ctx, id, p)
	updated, _ := args.Get(0).(*domain.Property)
	return updated, args.Error(1)
}

func (m *mockPropertyRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newStore(clock *time.Time) *store.Store {
	return store.New(store.Options{CacheTTL: time.Minute, Clock: func() time.Time { return *clock }})
}

func listResult(total int, props ...domain.Property) domain.ReadResult[domain.PropertyPage] {
	return domain.ReadResult[domain.PropertyPage]{Value: domain.PropertyPage{
		Properties: props,
		Pagination: domain.NewPagination(1, domain.DefaultPropertyPageLimit, total),
	}}
}

func TestLoadPropertiesUsesCacheWhileFresh(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newStore(&now)
	repo := new(mockPropertyRepo)
	page := domain.PageRequest{Page: 1, Limit: domain.DefaultPropertyPageLimit}
	repo.On("FindAll", mock.Anything, domain.PropertyFilters{}, page).
		Return(listResult(1, domain.Property{ID: "a", Price: domain.Price{Amount: 10}})).Twice()

	uc := NewLoadPropertiesUseCase(repo, s)

	first := uc.Execute(context.Background(), domain.PageRequest{}, false)
	require.NoError(t, first.Err)
	assert.Len(t, first.Value, 1)

	second := uc.Execute(context.Background(), domain.PageRequest{}, false)
	assert.Len(t, second.Value, 1)
	repo.AssertNumberOfCalls(t, "FindAll", 1)

	now = now.Add(2 * time.Minute)
	uc.Execute(context.Background(), domain.PageRequest{}, false)
	repo.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestLoadPropertiesForceBypassesCache(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	repo := new(mockPropertyRepo)
	repo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(listResult(0))

	uc := NewLoadPropertiesUseCase(repo, s)
	uc.Execute(context.Background(), domain.PageRequest{}, false)
	uc.Execute(context.Background(), domain.PageRequest{}, true)

	repo.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestLoadPropertiesSendsStoreFilters(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	require.NoError(t, s.SetFilter(store.FilterAvailable))
	search := "loft"
	s.SetSearchFilters(store.SearchFiltersPatch{Search: &search})

	repo := new(mockPropertyRepo)
	expected := domain.PropertyFilters{Search: "loft", Status: domain.PropertyStatusAvailable}
	repo.On("FindAll", mock.Anything, expected, domain.PageRequest{Page: 2, Limit: 5}).Return(listResult(0))

	NewLoadPropertiesUseCase(repo, s).Execute(context.Background(), domain.PageRequest{Page: 2, Limit: 5}, false)

	repo.AssertExpectations(t)
}

// filteringPropertyRepo отвечает так же, как API: фильтрует весь набор и считает total по нему.
type filteringPropertyRepo struct {
	mockPropertyRepo
	all []domain.Property
}

func (r *filteringPropertyRepo) FindAll(_ context.Context, filters domain.PropertyFilters, page domain.PageRequest) domain.ReadResult[domain.PropertyPage] {
	var matched []domain.Property
	for _, p := range r.all {
		if filters.Matches(p) {
			matched = append(matched, p)
		}
	}
	return domain.ReadResult[domain.PropertyPage]{Value: domain.PropertyPage{
		Properties: matched,
		Pagination: domain.NewPagination(page.Page, page.Limit, len(matched)),
	}}
}

func TestLoadPropertiesExpensiveTotalMatchesRows(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	require.NoError(t, s.SetFilter(store.FilterExpensive))

	repo := &filteringPropertyRepo{all: []domain.Property{
		{ID: "cheap", Price: domain.Price{Amount: 250_000}},
		{ID: "edge", Price: domain.Price{Amount: 1_000_000}},
		{ID: "lux", Price: domain.Price{Amount: 1_000_001}},
	}}

	result := NewLoadPropertiesUseCase(repo, s).Execute(context.Background(), domain.PageRequest{Page: 1, Limit: 100}, false)
	require.NoError(t, result.Err)

	require.Len(t, result.Value, 1)
	assert.Equal(t, "lux", result.Value[0].ID)
	require.NotNil(t, s.SelectPagination())
	assert.Equal(t, 1, s.SelectPagination().Total)
	assert.Equal(t, 1, s.SelectTotalPages())

	filters := s.SelectServerFilters()
	assert.Nil(t, filters.MinPrice)
	require.NotNil(t, filters.PriceAbove)
	assert.Equal(t, 1_000_000.0, *filters.PriceAbove)
}

func TestLoadPropertiesRecordsReadError(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	readErr := domain.NewNetworkError("connection refused", nil)
	repo := new(mockPropertyRepo)
	repo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ReadResult[domain.PropertyPage]{Value: domain.EmptyPropertyPage(), Err: readErr})

	result := NewLoadPropertiesUseCase(repo, s).Execute(context.Background(), domain.PageRequest{}, false)

	assert.Empty(t, result.Value)
	assert.Same(t, readErr, result.Err)
	assert.Same(t, readErr, s.SelectError())
	assert.False(t, s.SelectIsCacheValid())
}

func TestGetPropertyDetailSelectsProperty(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	repo := new(mockPropertyRepo)
	repo.On("FindByID", mock.Anything, "a").Return(domain.ReadResult[*domain.Property]{Value: &domain.Property{ID: "a"}})

	result := NewGetPropertyDetailUseCase(repo, s).Execute(context.Background(), "a")

	require.NoError(t, result.Err)
	require.NotNil(t, s.SelectSelectedProperty())
	assert.Equal(t, "a", s.SelectSelectedProperty().ID)
}

func TestCreatePropertyValidatesAndUpserts(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	repo := new(mockPropertyRepo)

	_, err := NewCreatePropertyUseCase(repo, s).Execute(context.Background(), domain.Property{Name: "", Price: domain.Price{Amount: -5, Currency: "usd"}})
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindValidation, apiErr.Kind)
	assert.Contains(t, apiErr.Fields, "name")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	input := domain.Property{Name: "Villa", Price: domain.Price{Amount: 2_000_000, Currency: "usd"}, Type: "villa"}
	normalized := input
	normalized.Type = domain.PropertyTypeHouse
	normalized.Price.Currency = "USD"
	normalized.Status = domain.PropertyStatusAvailable
	created := normalized
	created.ID = "new"
	repo.On("Create", mock.Anything, normalized).Return(&created, nil)

	got, err := NewCreatePropertyUseCase(repo, s).Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)

	stored, ok := s.SelectPropertyByID("new")
	require.True(t, ok)
	assert.Equal(t, domain.PropertyTypeHouse, stored.Type)
	assert.False(t, s.SelectIsCacheValid())
}

func TestDeletePropertyPropagatesError(t *testing.T) {
	now := time.Now()
	s := newStore(&now)
	repo := new(mockPropertyRepo)
	notFound := domain.NewAPIError(404, "Property not found", "", nil)
	repo.On("Delete", mock.Anything, "missing").Return(notFound)

	err := NewDeletePropertyUseCase(repo, s).Execute(context.Background(), "missing")

	assert.Same(t, notFound, err)
	assert.Same(t, notFound, s.SelectError())
}

type stubImageRepo struct {
	image   *domain.PropertyImage
	updated domain.PropertyImage
}

func (r *stubImageRepo) FindByProperty(context.Context, string, domain.ImageFilters) domain.ReadResult[[]domain.PropertyImage] {
	return domain.ReadResult[[]domain.PropertyImage]{Value: []domain.PropertyImage{}}
}

func (r *stubImageRepo) FindByID(context.Context, string, string) domain.ReadResult[*domain.PropertyImage] {
	return domain.ReadResult[*domain.PropertyImage]{Value: r.image}
}

func (r *stubImageRepo) Create(_ context.Context, img domain.PropertyImage) (*domain.PropertyImage, error) {
	img.ID = "img-new"
	return &img, nil
}

func (r *stubImageRepo) Update(_ context.Context, img domain.PropertyImage) (*domain.PropertyImage, error) {
	r.updated = img
	return &img, nil
}

func (r *stubImageRepo) Delete(context.Context, string, string) error {
	return nil
}

func TestSetImageEnabled(t *testing.T) {
	images := &stubImageRepo{image: &domain.PropertyImage{ID: "i1", PropertyID: "p1", File: "a.jpg", Enabled: true}}
	uc := NewPropertyMediaUseCase(images, nil)

	updated, err := uc.SetImageEnabled(context.Background(), "p1", "i1", false)

	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.Equal(t, "a.jpg", images.updated.File)
}

func TestAddImageRequiresFile(t *testing.T) {
	uc := NewPropertyMediaUseCase(&stubImageRepo{}, nil)
	_, err := uc.AddImage(context.Background(), "p1", " ", true)

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindValidation, apiErr.Kind)
}
