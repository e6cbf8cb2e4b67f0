package usecase

import (
	"context"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
	"real-estate-system/storefront/internal/core/store"
)

type GetPropertyDetailUseCase struct {
	repo  port.PropertyRepositoryPort
	store *store.Store
}

func NewGetPropertyDetailUseCase(repo port.PropertyRepositoryPort, s *store.Store) *GetPropertyDetailUseCase {
	return &GetPropertyDetailUseCase{repo: repo, store: s}
}

// Execute загружает объект и делает его выбранным в сторе.
func (uc *GetPropertyDetailUseCase) Execute(ctx context.Context, id string) domain.ReadResult[*domain.Property] {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "GetPropertyDetail",
		"property_id": id,
	})

	generation := uc.store.BeginPropertyDetail()
	result := uc.repo.FindByID(ctx, id)
	if !uc.store.ApplyPropertyDetail(generation, result) {
		ucLogger.Debug("Discarded response of a superseded request", nil)
	}
	if result.Err != nil {
		ucLogger.Warn("Property detail is unavailable", port.Fields{"error": result.Err.Error()})
	}
	return result
}
