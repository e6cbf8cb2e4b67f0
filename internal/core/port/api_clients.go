package port

import (
	"context"

	"real-estate-system/storefront/internal/core/domain"
)

// PropertyAPIPort — клиент ресурса /properties.
type PropertyAPIPort interface {
	FetchList(ctx context.Context, filters domain.PropertyFilters, page domain.PageRequest) (*domain.PropertyPage, error)
	FetchByID(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, property domain.Property) (*domain.Property, error)
	Update(ctx context.Context, id string, property domain.Property) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
}

// OwnerAPIPort — клиент ресурса /owners.
type OwnerAPIPort interface {
	FetchList(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) (*domain.OwnerPage, error)
	FetchByID(ctx context.Context, id string) (*domain.Owner, error)
	Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error)
	Update(ctx context.Context, id string, owner domain.Owner) (*domain.Owner, error)
	Delete(ctx context.Context, id string) error
}

// PropertyImageAPIPort — клиент ресурса /properties/{id}/images.
type PropertyImageAPIPort interface {
	FetchList(ctx context.Context, propertyID string, filters domain.ImageFilters) ([]domain.PropertyImage, error)
	FetchByID(ctx context.Context, propertyID, imageID string) (*domain.PropertyImage, error)
	Create(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error)
	Update(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error)
	Delete(ctx context.Context, propertyID, imageID string) error
}

// PropertyTraceAPIPort — клиент ресурса /properties/{id}/traces.
type PropertyTraceAPIPort interface {
	FetchList(ctx context.Context, propertyID string, query domain.TraceQuery) ([]domain.PropertyTrace, error)
	FetchByID(ctx context.Context, propertyID, traceID string) (*domain.PropertyTrace, error)
	Create(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error)
	Update(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error)
	Delete(ctx context.Context, propertyID, traceID string) error
}
