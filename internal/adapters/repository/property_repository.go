package repository

import (
	"context"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

// PropertyRepository оборачивает API-клиент объектов.
// Ошибки чтения превращаются в пустой результат, ошибки записи отдаются как есть.
type PropertyRepository struct {
	api port.PropertyAPIPort
}

func NewPropertyRepository(api port.PropertyAPIPort) *PropertyRepository {
	return &PropertyRepository{api: api}
}

func (r *PropertyRepository) logger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    method,
	})
}

func (r *PropertyRepository) FindAll(ctx context.Context, filters domain.PropertyFilters, page domain.PageRequest) domain.ReadResult[domain.PropertyPage] {
	result, err := r.api.FetchList(ctx, filters, page)
	if err != nil {
		r.logger(ctx, "FindAll").Warn("Failed to fetch properties, returning empty list", port.Fields{"error": err.Error()})
		return domain.ReadResult[domain.PropertyPage]{Value: domain.EmptyPropertyPage(), Err: err}
	}
	return domain.ReadResult[domain.PropertyPage]{Value: *result}
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) domain.ReadResult[*domain.Property] {
	property, err := r.api.FetchByID(ctx, id)
	if err != nil {
		r.logger(ctx, "FindByID").Warn("Failed to fetch property", port.Fields{"property_id": id, "error": err.Error()})
		return domain.ReadResult[*domain.Property]{Err: err}
	}
	return domain.ReadResult[*domain.Property]{Value: property}
}

func (r *PropertyRepository) Create(ctx context.Context, property domain.Property) (*domain.Property, error) {
	created, err := r.api.Create(ctx, property)
	if err != nil {
		r.logger(ctx, "Create").Error("Failed to create property", err, nil)
		return nil, err
	}
	return created, nil
}

func (r *PropertyRepository) Update(ctx context.Context, id string, property domain.Property) (*domain.Property, error) {
	updated, err := r.api.Update(ctx, id, property)
	if err != nil {
		r.logger(ctx, "Update").Error("Failed to update property", err, port.Fields{"property_id": id})
		return nil, err
	}
	return updated, nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, id); err != nil {
		r.logger(ctx, "Delete").Error("Failed to delete property", err, port.Fields{"property_id": id})
		return err
	}
	return nil
}
