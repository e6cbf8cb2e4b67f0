package port

import (
	"context"

	"real-estate-system/storefront/internal/core/domain"
)

// MockStoragePort — хранилище mock API.
// Отсутствующие записи возвращают domain.ErrNotFound.
type MockStoragePort interface {
	ListProperties(ctx context.Context, filters domain.PropertyFilters, page domain.PageRequest) (*domain.PropertyPage, error)
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	CreateProperty(ctx context.Context, property domain.Property) (*domain.Property, error)
	UpdateProperty(ctx context.Context, property domain.Property) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id string) error
	CountPropertiesByOwner(ctx context.Context, ownerID string) (int, error)

	ListOwners(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) (*domain.OwnerPage, error)
	GetOwner(ctx context.Context, id string) (*domain.Owner, error)
	CreateOwner(ctx context.Context, owner domain.Owner) (*domain.Owner, error)
	UpdateOwner(ctx context.Context, owner domain.Owner) (*domain.Owner, error)
	DeleteOwner(ctx context.Context, id string) error

	ListImages(ctx context.Context, propertyID string, filters domain.ImageFilters) ([]domain.PropertyImage, error)
	GetImage(ctx context.Context, propertyID, imageID string) (*domain.PropertyImage, error)
	CreateImage(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error)
	UpdateImage(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error)
	DeleteImage(ctx context.Context, propertyID, imageID string) error

	ListTraces(ctx context.Context, propertyID string, query domain.TraceQuery) ([]domain.PropertyTrace, error)
	GetTrace(ctx context.Context, propertyID, traceID string) (*domain.PropertyTrace, error)
	CreateTrace(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error)
	UpdateTrace(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error)
	DeleteTrace(ctx context.Context, propertyID, traceID string) error

	Close(ctx context.Context) error
}

// Dataset — полный набор записей для начального заполнения хранилища.
type Dataset struct {
	Owners     []domain.Owner
	Properties []domain.Property
	Images     []domain.PropertyImage
	Traces     []domain.PropertyTrace
}

// SeederPort заменяет содержимое хранилища набором данных.
type SeederPort interface {
	Seed(ctx context.Context, data Dataset) error
}
