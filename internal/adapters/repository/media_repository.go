package repository

import (
	"context"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

type PropertyImageRepository struct {
	api port.PropertyImageAPIPort
}

func NewPropertyImageRepository(api port.PropertyImageAPIPort) *PropertyImageRepository {
	return &PropertyImageRepository{api: api}
}

func (r *PropertyImageRepository) logger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyImageRepository",
		"method":    method,
	})
}

func (r *PropertyImageRepository) FindByProperty(ctx context.Context, propertyID string, filters domain.ImageFilters) domain.ReadResult[[]domain.PropertyImage] {
	images, err := r.api.FetchList(ctx, propertyID, filters)
	if err != nil {
		r.logger(ctx, "FindByProperty").Warn("Failed to fetch images, returning empty list", port.Fields{"property_id": propertyID, "error": err.Error()})
		return domain.ReadResult[[]domain.PropertyImage]{Value: []domain.PropertyImage{}, Err: err}
	}
	return domain.ReadResult[[]domain.PropertyImage]{Value: images}
}

func (r *PropertyImageRepository) FindByID(ctx context.Context, propertyID, imageID string) domain.ReadResult[*domain.PropertyImage] {
	image, err := r.api.FetchByID(ctx, propertyID, imageID)
	if err != nil {
		r.logger(ctx, "FindByID").Warn("Failed to fetch image", port.Fields{"image_id": imageID, "error": err.Error()})
		return domain.ReadResult[*domain.PropertyImage]{Err: err}
	}
	return domain.ReadResult[*domain.PropertyImage]{Value: image}
}

func (r *PropertyImageRepository) Create(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	created, err := r.api.Create(ctx, image)
	if err != nil {
		r.logger(ctx, "Create").Error("Failed to create image", err, port.Fields{"property_id": image.PropertyID})
		return nil, err
	}
	return created, nil
}

func (r *PropertyImageRepository) Update(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	updated, err := r.api.Update(ctx, image)
	if err != nil {
		r.logger(ctx, "Update").Error("Failed to update image", err, port.Fields{"image_id": image.ID})
		return nil, err
	}
	return updated, nil
}

func (r *PropertyImageRepository) Delete(ctx context.Context, propertyID, imageID string) error {
	if err := r.api.Delete(ctx, propertyID, imageID); err != nil {
		r.logger(ctx, "Delete").Error("Failed to delete image", err, port.Fields{"image_id": imageID})
		return err
	}
	return nil
}

type PropertyTraceRepository struct {
	api port.PropertyTraceAPIPort
}

func NewPropertyTraceRepository(api port.PropertyTraceAPIPort) *PropertyTraceRepository {
	return &PropertyTraceRepository{api: api}
}

func (r *PropertyTraceRepository) logger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyTraceRepository",
		"method":    method,
	})
}

func (r *PropertyTraceRepository) FindByProperty(ctx context.Context, propertyID string, query domain.TraceQuery) domain.ReadResult[[]domain.PropertyTrace] {
	traces, err := r.api.FetchList(ctx, propertyID, query)
	if err != nil {
		r.logger(ctx, "FindByProperty").Warn("Failed to fetch traces, returning empty list", port.Fields{"property_id": propertyID, "error": err.Error()})
		return domain.ReadResult[[]domain.PropertyTrace]{Value: []domain.PropertyTrace{}, Err: err}
	}
	return domain.ReadResult[[]domain.PropertyTrace]{Value: traces}
}

func (r *PropertyTraceRepository) FindByID(ctx context.Context, propertyID, traceID string) domain.ReadResult[*domain.PropertyTrace] {
	trace, err := r.api.FetchByID(ctx, propertyID, traceID)
	if err != nil {
		r.logger(ctx, "FindByID").Warn("Failed to fetch trace", port.Fields{"trace_id": traceID, "error": err.Error()})
		return domain.ReadResult[*domain.PropertyTrace]{Err: err}
	}
	return domain.ReadResult[*domain.PropertyTrace]{Value: trace}
}

func (r *PropertyTraceRepository) Create(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	created, err := r.api.Create(ctx, trace)
	if err != nil {
		r.logger(ctx, "Create").Error("Failed to create trace", err, port.Fields{"property_id": trace.PropertyID})
		return nil, err
	}
	return created, nil
}

func (r *PropertyTraceRepository) Update(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	updated, err := r.api.Update(ctx, trace)
	if err != nil {
		r.logger(ctx, "Update").Error("Failed to update trace", err, port.Fields{"trace_id": trace.ID})
		return nil, err
	}
	return updated, nil
}

func (r *PropertyTraceRepository) Delete(ctx context.Context, propertyID, traceID string) error {
	if err := r.api.Delete(ctx, propertyID, traceID); err != nil {
		r.logger(ctx, "Delete").Error("Failed to delete trace", err, port.Fields{"trace_id": traceID})
		return err
	}
	return nil
}
