package store

import (
	"real-estate-system/storefront/internal/core/domain"
)

// Селекторы синхронные и возвращают копии, чтобы потребители не меняли состояние в обход действий.

func (s *Store) SelectAllProperties() []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectLocked(s.properties.allIDs)
}

// SelectFilteredProperties — объекты, прошедшие фильтр и поиск, в порядке загрузки.
func (s *Store) SelectFilteredProperties() []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectLocked(s.properties.filteredIDs)
}

// SelectPaginatedProperties режет отфильтрованный список на страницы на стороне клиента.
func (s *Store) SelectPaginatedProperties(page, perPage int) []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.properties.filteredIDs
	if perPage <= 0 {
		return s.collectLocked(ids)
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(ids) {
		return []domain.Property{}
	}
	end := start + perPage
	if end > len(ids) {
		end = len(ids)
	}
	return s.collectLocked(ids[start:end])
}

// SelectCurrentPage возвращает 1, пока пагинация не загружена.
func (s *Store) SelectCurrentPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.properties.pagination == nil {
		return domain.DefaultPage
	}
	return s.properties.pagination.Page
}

// SelectTotalPages возвращает 0, пока пагинация не загружена.
func (s *Store) SelectTotalPages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.properties.pagination == nil {
		return 0
	}
	return s.properties.pagination.TotalPages
}

func (s *Store) SelectPagination() *domain.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.properties.pagination == nil {
		return nil
	}
	p := *s.properties.pagination
	return &p
}

func (s *Store) SelectIsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.properties.listLoading || s.properties.detailLoading
}

// SelectError возвращает ошибку списка, а если ее нет, ошибку карточки.
func (s *Store) SelectError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.properties.listErr != nil {
		return s.properties.listErr
	}
	return s.properties.detailErr
}

func (s *Store) SelectSelectedProperty() *domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.properties.selected == nil {
		return nil
	}
	p := s.properties.selected.Clone()
	return &p
}

func (s *Store) SelectPropertyByID(id string) (domain.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.properties.byID[id]
	if !ok {
		return domain.Property{}, false
	}
	return p.Clone(), true
}

func (s *Store) SelectFilter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.properties.filter
}

func (s *Store) SelectSearchFilters() SearchFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.properties.searchFilters.clone()
}

// SelectServerFilters — параметры запроса к API для текущих фильтров.
func (s *Store) SelectServerFilters() domain.PropertyFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serverFiltersLocked()
}

// SelectIsCacheValid — свеж ли кэш для текущих фильтров.
func (s *Store) SelectIsCacheValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isFreshLocked(s.serverFiltersLocked().Signature())
}

func (s *Store) SelectCacheState() CacheState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.properties.cache
}

func (s *Store) collectLocked(ids []string) []domain.Property {
	out := make([]domain.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.properties.byID[id]; ok {
			out = append(out, p.Clone())
		}
	}
	return out
}
