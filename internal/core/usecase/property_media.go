package usecase

import (
	"context"
	"fmt"
	"strings"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

// PropertyMediaUseCase — изображения и история продаж объекта.
type PropertyMediaUseCase struct {
	images port.PropertyImageRepositoryPort
	traces port.PropertyTraceRepositoryPort
}

func NewPropertyMediaUseCase(images port.PropertyImageRepositoryPort, traces port.PropertyTraceRepositoryPort) *PropertyMediaUseCase {
	return &PropertyMediaUseCase{images: images, traces: traces}
}

func (uc *PropertyMediaUseCase) ListImages(ctx context.Context, propertyID string, enabledOnly bool) domain.ReadResult[[]domain.PropertyImage] {
	return uc.images.FindByProperty(ctx, propertyID, domain.ImageFilters{EnabledOnly: enabledOnly})
}

func (uc *PropertyMediaUseCase) AddImage(ctx context.Context, propertyID, file string, enabled bool) (*domain.PropertyImage, error) {
	if strings.TrimSpace(file) == "" {
		return nil, domain.NewValidationError("Missing required field: file", map[string][]string{"file": {"is required"}})
	}
	return uc.images.Create(ctx, domain.PropertyImage{PropertyID: propertyID, File: file, Enabled: enabled})
}

// SetImageEnabled читает изображение и сохраняет его с новым флагом.
func (uc *PropertyMediaUseCase) SetImageEnabled(ctx context.Context, propertyID, imageID string, enabled bool) (*domain.PropertyImage, error) {
	current := uc.images.FindByID(ctx, propertyID, imageID)
	if current.Err != nil {
		return nil, current.Err
	}
	if current.Value == nil {
		return nil, fmt.Errorf("image %s: %w", imageID, domain.ErrNotFound)
	}

	image := *current.Value
	image.PropertyID = propertyID
	image.Enabled = enabled

	updated, err := uc.images.Update(ctx, image)
	if err != nil {
		return nil, err
	}
	contextkeys.LoggerFromContext(ctx).Info("Image visibility changed", port.Fields{
		"use_case": "SetImageEnabled",
		"image_id": imageID,
		"enabled":  enabled,
	})
	return updated, nil
}

func (uc *PropertyMediaUseCase) DeleteImage(ctx context.Context, propertyID, imageID string) error {
	return uc.images.Delete(ctx, propertyID, imageID)
}

func (uc *PropertyMediaUseCase) ListTraces(ctx context.Context, propertyID string, query domain.TraceQuery) domain.ReadResult[[]domain.PropertyTrace] {
	return uc.traces.FindByProperty(ctx, propertyID, query.WithDefaults())
}

func (uc *PropertyMediaUseCase) AddTrace(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	violations := make(map[string][]string)
	if trace.DateSale.IsZero() {
		violations["dateSale"] = []string{"is required"}
	}
	if strings.TrimSpace(trace.Name) == "" {
		violations["name"] = []string{"is required"}
	}
	if trace.Value < 0 {
		violations["value"] = []string{"must be greater than or equal to 0"}
	}
	if trace.Tax < 0 {
		violations["tax"] = []string{"must be greater than or equal to 0"}
	}
	if len(violations) > 0 {
		return nil, domain.NewValidationError("invalid trace", violations)
	}
	return uc.traces.Create(ctx, trace)
}

func (uc *PropertyMediaUseCase) DeleteTrace(ctx context.Context, propertyID, traceID string) error {
	return uc.traces.Delete(ctx, propertyID, traceID)
}
