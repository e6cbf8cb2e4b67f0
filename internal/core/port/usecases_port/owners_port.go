package usecases_port

import (
	"context"

	"real-estate-system/storefront/internal/core/domain"
)

type ManageOwnersUseCasePort interface {
	List(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) domain.ReadResult[domain.OwnerPage]
	Get(ctx context.Context, id string) domain.ReadResult[*domain.Owner]
	Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error)
	Update(ctx context.Context, id string, owner domain.Owner) (*domain.Owner, error)
	Delete(ctx context.Context, id string) error
}
