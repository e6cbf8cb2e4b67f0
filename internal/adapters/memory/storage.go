package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

// Storage — хранилище mock API в памяти процесса.
type Storage struct {
	mu sync.RWMutex

	owners     map[string]domain.Owner
	properties map[string]domain.Property
	images     map[string]domain.PropertyImage
	traces     map[string]domain.PropertyTrace

	now func() time.Time
}

var (
	_ port.MockStoragePort = (*Storage)(nil)
	_ port.SeederPort      = (*Storage)(nil)
)

func NewStorage() *Storage {
	s := &Storage{now: func() time.Time { return time.Now().UTC() }}
	s.reset()
	return s
}

func (s *Storage) reset() {
	s.owners = make(map[string]domain.Owner)
	s.properties = make(map[string]domain.Property)
	s.images = make(map[string]domain.PropertyImage)
	s.traces = make(map[string]domain.PropertyTrace)
}

// Seed заменяет все данные набором data.
func (s *Storage) Seed(ctx context.Context, data port.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	for _, o := range data.Owners {
		s.owners[o.ID] = o
	}
	for _, p := range data.Properties {
		s.properties[p.ID] = p.Clone()
	}
	for _, img := range data.Images {
		s.images[img.ID] = img
	}
	for _, t := range data.Traces {
		s.traces[t.ID] = t
	}
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	return nil
}

// ---- properties ----

func (s *Storage) ListProperties(ctx context.Context, filters domain.PropertyFilters, page domain.PageRequest) (*domain.PropertyPage, error) {
	page = page.WithDefaults(domain.DefaultPropertyPageLimit)

	s.mu.RLock()
	matched := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		if filters.Matches(p) {
			matched = append(matched, p.Clone())
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	return &domain.PropertyPage{
		Properties: pageSlice(matched, page),
		Pagination: domain.NewPagination(page.Page, page.Limit, len(matched)),
	}, nil
}

func (s *Storage) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	c := p.Clone()
	return &c, nil
}

func (s *Storage) CreateProperty(ctx context.Context, property domain.Property) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	if _, exists := s.properties[property.ID]; exists {
		return nil, fmt.Errorf("property %s already exists: %w", property.ID, domain.ErrInvalidArgument)
	}
	now := s.now()
	property.CreatedAt, property.UpdatedAt = now, now
	s.properties[property.ID] = property.Clone()
	return &property, nil
}

func (s *Storage) UpdateProperty(ctx context.Context, property domain.Property) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.properties[property.ID]
	if !ok {
		return nil, fmt.Errorf("property %s: %w", property.ID, domain.ErrNotFound)
	}
	property.CreatedAt = existing.CreatedAt
	property.UpdatedAt = s.now()
	s.properties[property.ID] = property.Clone()
	return &property, nil
}

// DeleteProperty удаляет объект вместе с его изображениями и историей продаж.
func (s *Storage) DeleteProperty(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[id]; !ok {
		return fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	delete(s.properties, id)
	for imgID, img := range s.images {
		if img.PropertyID == id {
			delete(s.images, imgID)
		}
	}
	for traceID, t := range s.traces {
		if t.PropertyID == id {
			delete(s.traces, traceID)
		}
	}
	return nil
}

func (s *Storage) CountPropertiesByOwner(ctx context.Context, ownerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countByOwnerLocked(ownerID), nil
}

func (s *Storage) countByOwnerLocked(ownerID string) int {
	count := 0
	for _, p := range s.properties {
		if p.OwnerID == ownerID {
			count++
		}
	}
	return count
}

// ---- owners ----

func (s *Storage) ListOwners(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) (*domain.OwnerPage, error) {
	page = page.WithDefaults(domain.DefaultOwnerPageLimit)

	s.mu.RLock()
	matched := make([]domain.Owner, 0, len(s.owners))
	for _, o := range s.owners {
		if filters.Matches(o) {
			matched = append(matched, o)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	return &domain.OwnerPage{
		Owners:     pageSlice(matched, page),
		Pagination: domain.NewPagination(page.Page, page.Limit, len(matched)),
	}, nil
}

func (s *Storage) GetOwner(ctx context.Context, id string) (*domain.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.owners[id]
	if !ok {
		return nil, fmt.Errorf("owner %s: %w", id, domain.ErrNotFound)
	}
	return &o, nil
}

func (s *Storage) CreateOwner(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner.ID == "" {
		owner.ID = uuid.NewString()
	}
	if _, exists := s.owners[owner.ID]; exists {
		return nil, fmt.Errorf("owner %s already exists: %w", owner.ID, domain.ErrInvalidArgument)
	}
	s.owners[owner.ID] = owner
	return &owner, nil
}

func (s *Storage) UpdateOwner(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.owners[owner.ID]; !ok {
		return nil, fmt.Errorf("owner %s: %w", owner.ID, domain.ErrNotFound)
	}
	s.owners[owner.ID] = owner
	return &owner, nil
}

// DeleteOwner отказывает, пока на владельца ссылается хотя бы один объект.
func (s *Storage) DeleteOwner(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.owners[id]; !ok {
		return fmt.Errorf("owner %s: %w", id, domain.ErrNotFound)
	}
	if count := s.countByOwnerLocked(id); count > 0 {
		return &domain.OwnerHasPropertiesError{OwnerID: id, Count: count}
	}
	delete(s.owners, id)
	return nil
}

// ---- images ----

func (s *Storage) ListImages(ctx context.Context, propertyID string, filters domain.ImageFilters) ([]domain.PropertyImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.properties[propertyID]; !ok {
		return nil, fmt.Errorf("property %s: %w", propertyID, domain.ErrNotFound)
	}
	images := make([]domain.PropertyImage, 0)
	for _, img := range s.images {
		if img.PropertyID != propertyID {
			continue
		}
		if filters.EnabledOnly && !img.Enabled {
			continue
		}
		images = append(images, img)
	}
	sort.Slice(images, func(i, j int) bool { return images[i].ID < images[j].ID })
	return images, nil
}

func (s *Storage) GetImage(ctx context.Context, propertyID, imageID string) (*domain.PropertyImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	img, ok := s.images[imageID]
	if !ok || img.PropertyID != propertyID {
		return nil, fmt.Errorf("image %s: %w", imageID, domain.ErrNotFound)
	}
	return &img, nil
}

func (s *Storage) CreateImage(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[image.PropertyID]; !ok {
		return nil, fmt.Errorf("property %s: %w", image.PropertyID, domain.ErrNotFound)
	}
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	s.images[image.ID] = image
	return &image, nil
}

func (s *Storage) UpdateImage(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.images[image.ID]
	if !ok || existing.PropertyID != image.PropertyID {
		return nil, fmt.Errorf("image %s: %w", image.ID, domain.ErrNotFound)
	}
	s.images[image.ID] = image
	return &image, nil
}

func (s *Storage) DeleteImage(ctx context.Context, propertyID, imageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, ok := s.images[imageID]
	if !ok || img.PropertyID != propertyID {
		return fmt.Errorf("image %s: %w", imageID, domain.ErrNotFound)
	}
	delete(s.images, imageID)
	return nil
}

// ---- traces ----

func (s *Storage) ListTraces(ctx context.Context, propertyID string, query domain.TraceQuery) ([]domain.PropertyTrace, error) {
	s.mu.RLock()
	if _, ok := s.properties[propertyID]; !ok {
		s.mu.RUnlock()
		return nil, fmt.Errorf("property %s: %w", propertyID, domain.ErrNotFound)
	}
	traces := make([]domain.PropertyTrace, 0)
	for _, t := range s.traces {
		if t.PropertyID == propertyID {
			traces = append(traces, t)
		}
	}
	s.mu.RUnlock()

	// стабильная сортировка требует детерминированного исходного порядка
	sort.Slice(traces, func(i, j int) bool { return traces[i].ID < traces[j].ID })
	domain.SortTraces(traces, query)
	return traces, nil
}

func (s *Storage) GetTrace(ctx context.Context, propertyID, traceID string) (*domain.PropertyTrace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.traces[traceID]
	if !ok || t.PropertyID != propertyID {
		return nil, fmt.Errorf("trace %s: %w", traceID, domain.ErrNotFound)
	}
	return &t, nil
}

func (s *Storage) CreateTrace(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[trace.PropertyID]; !ok {
		return nil, fmt.Errorf("property %s: %w", trace.PropertyID, domain.ErrNotFound)
	}
	if trace.ID == "" {
		trace.ID = uuid.NewString()
	}
	s.traces[trace.ID] = trace
	return &trace, nil
}

func (s *Storage) UpdateTrace(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.traces[trace.ID]
	if !ok || existing.PropertyID != trace.PropertyID {
		return nil, fmt.Errorf("trace %s: %w", trace.ID, domain.ErrNotFound)
	}
	s.traces[trace.ID] = trace
	return &trace, nil
}

func (s *Storage) DeleteTrace(ctx context.Context, propertyID, traceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.traces[traceID]
	if !ok || t.PropertyID != propertyID {
		return fmt.Errorf("trace %s: %w", traceID, domain.ErrNotFound)
	}
	delete(s.traces, traceID)
	return nil
}

func pageSlice[T any](items []T, page domain.PageRequest) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
