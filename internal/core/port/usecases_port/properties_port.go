package usecases_port

import (
	"context"

	"real-estate-system/storefront/internal/core/domain"
)

// LoadPropertiesUseCasePort отдает видимый список объектов. Err заполнен,
// если чтение не удалось и список построен из пустого результата.
type LoadPropertiesUseCasePort interface {
	Execute(ctx context.Context, page domain.PageRequest, force bool) domain.ReadResult[[]domain.Property]
}

type GetPropertyDetailUseCasePort interface {
	Execute(ctx context.Context, id string) domain.ReadResult[*domain.Property]
}

type CreatePropertyUseCasePort interface {
	Execute(ctx context.Context, property domain.Property) (*domain.Property, error)
}

type UpdatePropertyUseCasePort interface {
	Execute(ctx context.Context, id string, property domain.Property) (*domain.Property, error)
}

type DeletePropertyUseCasePort interface {
	Execute(ctx context.Context, id string) error
}
