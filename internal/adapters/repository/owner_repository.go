package repository

import (
	"context"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

type OwnerRepository struct {
	api port.OwnerAPIPort
}

func NewOwnerRepository(api port.OwnerAPIPort) *OwnerRepository {
	return &OwnerRepository{api: api}
}

func (r *OwnerRepository) logger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "OwnerRepository",
		"method":    method,
	})
}

// FindAll при ошибке возвращает пустой список и страницу {1,10,0,0,false,false}.
func (r *OwnerRepository) FindAll(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) domain.ReadResult[domain.OwnerPage] {
	result, err := r.api.FetchList(ctx, filters, page)
	if err != nil {
		r.logger(ctx, "FindAll").Warn("Failed to fetch owners, returning empty list", port.Fields{"error": err.Error()})
		return domain.ReadResult[domain.OwnerPage]{Value: domain.EmptyOwnerPage(), Err: err}
	}
	return domain.ReadResult[domain.OwnerPage]{Value: *result}
}

func (r *OwnerRepository) FindByID(ctx context.Context, id string) domain.ReadResult[*domain.Owner] {
	owner, err := r.api.FetchByID(ctx, id)
	if err != nil {
		r.logger(ctx, "FindByID").Warn("Failed to fetch owner", port.Fields{"owner_id": id, "error": err.Error()})
		return domain.ReadResult[*domain.Owner]{Err: err}
	}
	return domain.ReadResult[*domain.Owner]{Value: owner}
}

func (r *OwnerRepository) Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	created, err := r.api.Create(ctx, owner)
	if err != nil {
		r.logger(ctx, "Create").Error("Failed to create owner", err, nil)
		return nil, err
	}
	return created, nil
}

func (r *OwnerRepository) Update(ctx context.Context, id string, owner domain.Owner) (*domain.Owner, error) {
	updated, err := r.api.Update(ctx, id, owner)
	if err != nil {
		r.logger(ctx, "Update").Error("Failed to update owner", err, port.Fields{"owner_id": id})
		return nil, err
	}
	return updated, nil
}

func (r *OwnerRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, id); err != nil {
		r.logger(ctx, "Delete").Error("Failed to delete owner", err, port.Fields{"owner_id": id})
		return err
	}
	return nil
}
