package repository

import (
	"context"
	"errors"
	"testing"

	"real-estate-system/storefront/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOwnerAPI struct {
	mock.Mock
}

func (m *mockOwnerAPI) FetchList(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) (*domain.OwnerPage, error) {
	args := m.Called(ctx, filters, page)
	if p, ok := args.Get(0).(*domain.OwnerPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOwnerAPI) FetchByID(ctx context.Context, id string) (*domain.Owner, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*domain.Owner); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOwnerAPI) Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	args := m.Called(ctx, owner)
	if o, ok := args.Get(0).(*domain.Owner); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOwnerAPI) Update(ctx context.Context, id string, owner domain.Owner) (*domain.Owner, error) {
	args := m.Called(ctx, id, owner)
	if o, ok := args.Get(0).(*domain.Owner); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOwnerAPI) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPropertyAPI struct {
	mock.Mock
}

func (m *mockPropertyAPI) FetchList(ctx context.Context, filters domain.PropertyFilters, page domain.PageRequest) (*domain.PropertyPage, error) {
	args := m.Called(ctx, filters, page)
	if p, ok := args.Get(0).(*domain.PropertyPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPropertyAPI) FetchByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPropertyAPI) Create(ctx context.Context, property domain.Property) (*domain.Property, error) {
	args := m.Called(ctx, property)
	if p, ok := args.Get(0).(*domain.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPropertyAPI) Update(ctx context.Context, id string, property domain.Property) (*domain.Property, error) {
	args := m.Called(ctx, id, property)
	if p, ok := args.Get(0).(*domain.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPropertyAPI) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestOwnerRepositoryFindAllSwallowsTransportFailure(t *testing.T) {
	api := new(mockOwnerAPI)
	networkErr := domain.NewNetworkError("connection refused", nil)
	api.On("FetchList", mock.Anything, domain.OwnerFilters{}, domain.PageRequest{}).Return(nil, networkErr)

	repo := NewOwnerRepository(api)
	result := repo.FindAll(context.Background(), domain.OwnerFilters{}, domain.PageRequest{})

	assert.Empty(t, result.Value.Owners)
	assert.NotNil(t, result.Value.Owners)
	assert.Equal(t, domain.Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 0, HasNext: false, HasPrev: false}, result.Value.Pagination)
	assert.Same(t, networkErr, result.Err)
	api.AssertExpectations(t)
}

func TestOwnerRepositoryFindAllPassesThroughSuccess(t *testing.T) {
	api := new(mockOwnerAPI)
	page := &domain.OwnerPage{
		Owners:     []domain.Owner{{ID: "o1", Name: "Ana"}},
		Pagination: domain.NewPagination(1, 100, 1),
	}
	api.On("FetchList", mock.Anything, domain.OwnerFilters{Search: "an"}, domain.PageRequest{Page: 1, Limit: 100}).Return(page, nil)

	result := NewOwnerRepository(api).FindAll(context.Background(), domain.OwnerFilters{Search: "an"}, domain.PageRequest{Page: 1, Limit: 100})

	require.NoError(t, result.Err)
	assert.Equal(t, *page, result.Value)
}

func TestOwnerRepositoryFindByIDReturnsNil(t *testing.T) {
	api := new(mockOwnerAPI)
	api.On("FetchByID", mock.Anything, "missing").Return(nil, domain.NewAPIError(404, "Owner not found", "", nil))

	result := NewOwnerRepository(api).FindByID(context.Background(), "missing")

	assert.Nil(t, result.Value)
	assert.True(t, result.Failed())
	assert.True(t, domain.IsNotFoundError(result.Err))
}

func TestOwnerRepositoryWritesPropagateOriginalError(t *testing.T) {
	api := new(mockOwnerAPI)
	conflict := domain.NewAPIError(409, "Cannot delete owner with associated properties", "", map[string]interface{}{"propertiesCount": 2.0})
	api.On("Delete", mock.Anything, "o1").Return(conflict)

	err := NewOwnerRepository(api).Delete(context.Background(), "o1")

	assert.Same(t, conflict, err)
}

func TestPropertyRepositoryCreatePropagatesOriginalError(t *testing.T) {
	api := new(mockPropertyAPI)
	networkErr := domain.NewNetworkError("connection reset", errors.New("ECONNRESET"))
	input := domain.Property{Name: "Loft"}
	api.On("Create", mock.Anything, input).Return(nil, networkErr)

	created, err := NewPropertyRepository(api).Create(context.Background(), input)

	assert.Nil(t, created)
	assert.Same(t, networkErr, err)
	assert.True(t, errors.Is(err, networkErr))
}

func TestPropertyRepositoryFindAllFallback(t *testing.T) {
	api := new(mockPropertyAPI)
	api.On("FetchList", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.NewTimeoutError("request timed out", nil))

	result := NewPropertyRepository(api).FindAll(context.Background(), domain.PropertyFilters{}, domain.PageRequest{})

	assert.Equal(t, domain.EmptyPropertyPage(), result.Value)
	apiErr, ok := domain.AsAPIError(result.Err)
	require.True(t, ok)
	assert.Equal(t, domain.KindTimeout, apiErr.Kind)
}
