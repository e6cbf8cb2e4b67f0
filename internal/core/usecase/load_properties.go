package usecase

import (
	"context"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
	"real-estate-system/storefront/internal/core/store"
)

// LoadPropertiesUseCase отдает список из стора, пока кэш свеж,
// иначе перезагружает его через репозиторий.
type LoadPropertiesUseCase struct {
	repo  port.PropertyRepositoryPort
	store *store.Store
}

func NewLoadPropertiesUseCase(repo port.PropertyRepositoryPort, s *store.Store) *LoadPropertiesUseCase {
	return &LoadPropertiesUseCase{repo: repo, store: s}
}

func (uc *LoadPropertiesUseCase) Execute(ctx context.Context, page domain.PageRequest, force bool) domain.ReadResult[[]domain.Property] {
	page = page.WithDefaults(domain.DefaultPropertyPageLimit)
	filters := uc.store.SelectServerFilters()
	signature := filters.Signature()

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "LoadProperties",
		"page":      page.Page,
		"limit":     page.Limit,
		"signature": signature,
	})

	if !force && uc.servesFromCache(page) {
		ucLogger.Debug("Serving properties from cache", nil)
		return domain.ReadResult[[]domain.Property]{Value: uc.store.SelectFilteredProperties()}
	}

	generation := uc.store.BeginPropertiesFetch()
	result := uc.repo.FindAll(ctx, filters, page)

	if !uc.store.ApplyPropertiesResult(generation, result, signature) {
		ucLogger.Debug("Discarded response of a superseded request", port.Fields{"generation": generation})
	}
	if result.Err != nil {
		ucLogger.Warn("Properties loaded with fallback", port.Fields{"error": result.Err.Error()})
	} else {
		ucLogger.Info("Properties loaded", port.Fields{"count": len(result.Value.Properties), "total": result.Value.Pagination.Total})
	}

	return domain.ReadResult[[]domain.Property]{Value: uc.store.SelectFilteredProperties(), Err: result.Err}
}

func (uc *LoadPropertiesUseCase) servesFromCache(page domain.PageRequest) bool {
	if !uc.store.SelectIsCacheValid() {
		return false
	}
	current := uc.store.SelectPagination()
	return current != nil && current.Page == page.Page && current.Limit == page.Limit
}
