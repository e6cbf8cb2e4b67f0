package port

import (
	"context"

	"real-estate-system/storefront/internal/core/domain"
)

// ChangeEventPublisherPort публикует события об изменениях в mock API.
type ChangeEventPublisherPort interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}
