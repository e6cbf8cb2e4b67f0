package port

import (
	"context"

	"real-estate-system/storefront/internal/core/domain"
)

// Репозитории скрывают API-клиенты от ядра.
// Чтение никогда не возвращает ошибку: результат несет безопасное значение
// и исходную ошибку. Запись возвращает ошибку без изменений.

type PropertyRepositoryPort interface {
	FindAll(ctx context.Context, filters domain.PropertyFilters, page domain.PageRequest) domain.ReadResult[domain.PropertyPage]
	FindByID(ctx context.Context, id string) domain.ReadResult[*domain.Property]
	Create(ctx context.Context, property domain.Property) (*domain.Property, error)
	Update(ctx context.Context, id string, property domain.Property) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
}

type OwnerRepositoryPort interface {
	FindAll(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) domain.ReadResult[domain.OwnerPage]
	FindByID(ctx context.Context, id string) domain.ReadResult[*domain.Owner]
	Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error)
	Update(ctx context.Context, id string, owner domain.Owner) (*domain.Owner, error)
	Delete(ctx context.Context, id string) error
}

type PropertyImageRepositoryPort interface {
	FindByProperty(ctx context.Context, propertyID string, filters domain.ImageFilters) domain.ReadResult[[]domain.PropertyImage]
	FindByID(ctx context.Context, propertyID, imageID string) domain.ReadResult[*domain.PropertyImage]
	Create(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error)
	Update(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error)
	Delete(ctx context.Context, propertyID, imageID string) error
}

type PropertyTraceRepositoryPort interface {
	FindByProperty(ctx context.Context, propertyID string, query domain.TraceQuery) domain.ReadResult[[]domain.PropertyTrace]
	FindByID(ctx context.Context, propertyID, traceID string) domain.ReadResult[*domain.PropertyTrace]
	Create(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error)
	Update(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error)
	Delete(ctx context.Context, propertyID, traceID string) error
}
