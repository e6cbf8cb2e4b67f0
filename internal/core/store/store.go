package store

import (
	"fmt"
	"sync"
	"time"

	"real-estate-system/storefront/internal/core/domain"
)

// DefaultCacheTTL — срок свежести кэша списка объектов.
const DefaultCacheTTL = 5 * time.Minute

// Filter — быстрый фильтр витрины.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterAvailable Filter = "available"
	FilterExpensive Filter = "expensive"
)

func ParseFilter(raw string) (Filter, error) {
	switch f := Filter(raw); f {
	case FilterAll, FilterAvailable, FilterExpensive:
		return f, nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("%w: unknown filter %q", domain.ErrInvalidArgument, raw)
}

// SearchFilters — поисковые фильтры витрины. Нулевое значение означает "без фильтров".
type SearchFilters struct {
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType domain.PropertyType
}

// SearchFiltersPatch меняет только заданные (не nil) поля.
type SearchFiltersPatch struct {
	Search       *string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType *domain.PropertyType
}

func (s SearchFilters) clone() SearchFilters {
	c := s
	if s.MinPrice != nil {
		v := *s.MinPrice
		c.MinPrice = &v
	}
	if s.MaxPrice != nil {
		v := *s.MaxPrice
		c.MaxPrice = &v
	}
	return c
}

func (s SearchFilters) apply(patch SearchFiltersPatch) SearchFilters {
	next := s.clone()
	if patch.Search != nil {
		next.Search = *patch.Search
	}
	if patch.MinPrice != nil {
		v := *patch.MinPrice
		next.MinPrice = &v
	}
	if patch.MaxPrice != nil {
		v := *patch.MaxPrice
		next.MaxPrice = &v
	}
	if patch.PropertyType != nil {
		next.PropertyType = *patch.PropertyType
	}
	return next
}

// CacheState — метаданные свежести списка.
type CacheState struct {
	Timestamp    time.Time
	TTL          time.Duration
	Signature    string
	NeedsRefresh bool
}

type propertyState struct {
	byID          map[string]domain.Property
	allIDs        []string
	filteredIDs   []string
	selected      *domain.Property
	pagination    *domain.Pagination
	filter        Filter
	searchFilters SearchFilters
	cache         CacheState
	listLoading   bool
	detailLoading bool
	// listErr — ошибка загрузки списка или записи, detailErr — загрузки карточки.
	listErr   error
	detailErr error

	listGeneration   uint64
	detailGeneration uint64
}

// Options настраивают Store. Нулевые значения заменяются значениями по умолчанию.
type Options struct {
	CacheTTL time.Duration
	Clock    func() time.Time
}

// Store — нормализованное хранилище объектов и состояние интерфейса.
// Создается при старте и передается потребителям явно.
// Все изменения идут через методы-действия под одним мьютексом.
type Store struct {
	mu    sync.RWMutex
	clock func() time.Time
	ttl   time.Duration

	properties propertyState
	ui         uiState
}

func New(opts Options) *Store {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	s := &Store{clock: opts.Clock, ttl: opts.CacheTTL}
	s.properties = s.initialPropertyState()
	s.ui = initialUIState()
	return s
}

func (s *Store) initialPropertyState() propertyState {
	return propertyState{
		byID:        make(map[string]domain.Property),
		allIDs:      []string{},
		filteredIDs: []string{},
		filter:      FilterAll,
		cache:       CacheState{TTL: s.ttl, NeedsRefresh: true},
	}
}

// Reset возвращает срез объектов в исходное состояние. Поколения запросов
// продолжают расти, поэтому ответы на запросы до сброса будут отброшены.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	listGen, detailGen := s.properties.listGeneration, s.properties.detailGeneration
	s.properties = s.initialPropertyState()
	s.properties.listGeneration = listGen + 1
	s.properties.detailGeneration = detailGen + 1
}

// BeginPropertiesFetch отмечает начало загрузки списка и возвращает поколение запроса.
func (s *Store) BeginPropertiesFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties.listGeneration++
	s.properties.listLoading = true
	s.properties.listErr = nil
	return s.properties.listGeneration
}

// ApplyPropertiesResult применяет ответ на запрос списка.
// Ответ устаревшего поколения отбрасывается, тогда возвращается false.
// При ошибке чтения применяется пустой результат, ошибка сохраняется,
// а кэш остается требующим обновления.
func (s *Store) ApplyPropertiesResult(generation uint64, result domain.ReadResult[domain.PropertyPage], signature string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.properties
	if generation != st.listGeneration {
		return false
	}

	byID := make(map[string]domain.Property, len(result.Value.Properties))
	allIDs := make([]string, 0, len(result.Value.Properties))
	for _, p := range result.Value.Properties {
		if _, seen := byID[p.ID]; !seen {
			allIDs = append(allIDs, p.ID)
		}
		byID[p.ID] = p.Clone()
	}
	st.byID = byID
	st.allIDs = allIDs

	pagination := result.Value.Pagination
	st.pagination = &pagination
	st.listLoading = false
	st.listErr = result.Err

	st.cache = CacheState{
		Timestamp:    s.clock(),
		TTL:          s.ttl,
		Signature:    signature,
		NeedsRefresh: result.Err != nil,
	}

	s.recomputeFilteredLocked()
	return true
}

// BeginPropertyDetail отмечает начало загрузки карточки объекта.
func (s *Store) BeginPropertyDetail() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties.detailGeneration++
	s.properties.detailLoading = true
	s.properties.detailErr = nil
	return s.properties.detailGeneration
}

// ApplyPropertyDetail перезаписывает выбранный объект результатом загрузки.
func (s *Store) ApplyPropertyDetail(generation uint64, result domain.ReadResult[*domain.Property]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.properties
	if generation != st.detailGeneration {
		return false
	}
	st.detailLoading = false
	st.detailErr = result.Err
	st.selected = nil
	if result.Value != nil {
		p := result.Value.Clone()
		st.selected = &p
	}
	return true
}

// ClearSelectedProperty сбрасывает выбранный объект.
func (s *Store) ClearSelectedProperty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties.selected = nil
}

// UpsertProperty кладет созданный или обновленный объект в кэш.
// Пагинация после этого неточна, поэтому кэш помечается устаревшим.
func (s *Store) UpsertProperty(p domain.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.properties
	if _, exists := st.byID[p.ID]; !exists {
		st.allIDs = append(st.allIDs, p.ID)
	}
	st.byID[p.ID] = p.Clone()
	if st.selected != nil && st.selected.ID == p.ID {
		selected := p.Clone()
		st.selected = &selected
	}
	st.cache.NeedsRefresh = true
	s.recomputeFilteredLocked()
}

// RemoveProperty удаляет объект из кэша и помечает кэш устаревшим.
func (s *Store) RemoveProperty(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.properties
	if _, exists := st.byID[id]; exists {
		delete(st.byID, id)
		st.allIDs = removeID(st.allIDs, id)
	}
	if st.selected != nil && st.selected.ID == id {
		st.selected = nil
	}
	st.cache.NeedsRefresh = true
	s.recomputeFilteredLocked()
}

// InvalidateCache заставляет следующую загрузку пойти в API.
func (s *Store) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties.cache.NeedsRefresh = true
}

// SetError записывает ошибку, не связанную с загрузкой.
func (s *Store) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties.listErr = err
}

func (s *Store) SetFilter(f Filter) error {
	if _, err := ParseFilter(string(f)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties.filter = f
	s.afterPredicateChangeLocked()
	return nil
}

func (s *Store) SetSearchFilters(patch SearchFiltersPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties.searchFilters = s.properties.searchFilters.apply(patch)
	s.afterPredicateChangeLocked()
}

// ClearSearchFilters возвращает поисковые фильтры к исходному значению.
func (s *Store) ClearSearchFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties.searchFilters = SearchFilters{}
	s.afterPredicateChangeLocked()
}

// afterPredicateChangeLocked пересчитывает видимый список и решает, остается ли кэш свежим.
// Кэш остается свежим только если загруженные данные заведомо покрывают новый фильтр.
func (s *Store) afterPredicateChangeLocked() {
	s.recomputeFilteredLocked()
	if !s.coversLocked(s.serverFiltersLocked().Signature()) {
		s.properties.cache.NeedsRefresh = true
	}
}

// coversLocked — true, если кэш содержит все записи, нужные для запроса с сигнатурой.
func (s *Store) coversLocked(signature string) bool {
	st := &s.properties
	if st.cache.Timestamp.IsZero() {
		return false
	}
	if st.cache.Signature == signature {
		return true
	}
	// Нефильтрованная загрузка, в которую поместились все записи.
	return st.cache.Signature == "" && st.pagination != nil && st.pagination.Total <= len(st.allIDs)
}

func (s *Store) recomputeFilteredLocked() {
	st := &s.properties
	predicate := s.serverFiltersLocked()
	filtered := make([]string, 0, len(st.allIDs))
	for _, id := range st.allIDs {
		p := st.byID[id]
		if !matchesQuickFilter(st.filter, p) || !predicate.Matches(p) {
			continue
		}
		filtered = append(filtered, id)
	}
	st.filteredIDs = filtered
}

// serverFiltersLocked переводит состояние фильтров в параметры запроса к API.
func (s *Store) serverFiltersLocked() domain.PropertyFilters {
	sf := s.properties.searchFilters.clone()
	filters := domain.PropertyFilters{
		Search:       sf.Search,
		MinPrice:     sf.MinPrice,
		MaxPrice:     sf.MaxPrice,
		PropertyType: sf.PropertyType,
	}
	switch s.properties.filter {
	case FilterAvailable:
		filters.Status = domain.PropertyStatusAvailable
	case FilterExpensive:
		threshold := float64(domain.ExpensivePriceThreshold)
		filters.PriceAbove = &threshold
	}
	return filters
}

func (s *Store) isFreshLocked(signature string) bool {
	c := s.properties.cache
	if c.NeedsRefresh || c.Timestamp.IsZero() {
		return false
	}
	if !s.clock().Before(c.Timestamp.Add(c.TTL)) {
		return false
	}
	return s.coversLocked(signature)
}

func matchesQuickFilter(f Filter, p domain.Property) bool {
	switch f {
	case FilterAvailable:
		return p.IsAvailable()
	case FilterExpensive:
		return p.IsExpensive()
	}
	return true
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
