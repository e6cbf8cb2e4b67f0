package usecase

import (
	"context"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

// ManageOwnersUseCase — операции над владельцами. Владельцы не кэшируются.
type ManageOwnersUseCase struct {
	repo port.OwnerRepositoryPort
}

func NewManageOwnersUseCase(repo port.OwnerRepositoryPort) *ManageOwnersUseCase {
	return &ManageOwnersUseCase{repo: repo}
}

func (uc *ManageOwnersUseCase) List(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) domain.ReadResult[domain.OwnerPage] {
	return uc.repo.FindAll(ctx, filters, page.WithDefaults(domain.DefaultOwnerPageLimit))
}

func (uc *ManageOwnersUseCase) Get(ctx context.Context, id string) domain.ReadResult[*domain.Owner] {
	return uc.repo.FindByID(ctx, id)
}

func (uc *ManageOwnersUseCase) Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	created, err := uc.repo.Create(ctx, owner)
	if err != nil {
		return nil, err
	}
	contextkeys.LoggerFromContext(ctx).Info("Owner created", port.Fields{"use_case": "CreateOwner", "owner_id": created.ID})
	return created, nil
}

func (uc *ManageOwnersUseCase) Update(ctx context.Context, id string, owner domain.Owner) (*domain.Owner, error) {
	return uc.repo.Update(ctx, id, owner)
}

// Delete возвращает ошибку API как есть. Для владельца с объектами это 409
// с propertiesCount в Details.
func (uc *ManageOwnersUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	contextkeys.LoggerFromContext(ctx).Info("Owner deleted", port.Fields{"use_case": "DeleteOwner", "owner_id": id})
	return nil
}
