package usecases_port

import (
	"context"

	"real-estate-system/storefront/internal/core/domain"
)

type PropertyMediaUseCasePort interface {
	ListImages(ctx context.Context, propertyID string, enabledOnly bool) domain.ReadResult[[]domain.PropertyImage]
	AddImage(ctx context.Context, propertyID, file string, enabled bool) (*domain.PropertyImage, error)
	SetImageEnabled(ctx context.Context, propertyID, imageID string, enabled bool) (*domain.PropertyImage, error)
	DeleteImage(ctx context.Context, propertyID, imageID string) error

	ListTraces(ctx context.Context, propertyID string, query domain.TraceQuery) domain.ReadResult[[]domain.PropertyTrace]
	AddTrace(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error)
	DeleteTrace(ctx context.Context, propertyID, traceID string) error
}
