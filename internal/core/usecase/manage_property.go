package usecase

import (
	"context"
	"strings"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
	"real-estate-system/storefront/internal/core/store"
)

type CreatePropertyUseCase struct {
	repo  port.PropertyRepositoryPort
	store *store.Store
}

func NewCreatePropertyUseCase(repo port.PropertyRepositoryPort, s *store.Store) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{repo: repo, store: s}
}

// Execute проверяет объект локально, создает его и кладет в стор.
func (uc *CreatePropertyUseCase) Execute(ctx context.Context, property domain.Property) (*domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "CreateProperty"})

	property, err := normalizeProperty(property)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.Create(ctx, property)
	if err != nil {
		uc.store.SetError(err)
		return nil, err
	}

	uc.store.UpsertProperty(*created)
	ucLogger.Info("Property created", port.Fields{"property_id": created.ID})
	return created, nil
}

type UpdatePropertyUseCase struct {
	repo  port.PropertyRepositoryPort
	store *store.Store
}

func NewUpdatePropertyUseCase(repo port.PropertyRepositoryPort, s *store.Store) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{repo: repo, store: s}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, id string, property domain.Property) (*domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id,
	})

	property, err := normalizeProperty(property)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, id, property)
	if err != nil {
		uc.store.SetError(err)
		return nil, err
	}

	uc.store.UpsertProperty(*updated)
	ucLogger.Info("Property updated", nil)
	return updated, nil
}

type DeletePropertyUseCase struct {
	repo  port.PropertyRepositoryPort
	store *store.Store
}

func NewDeletePropertyUseCase(repo port.PropertyRepositoryPort, s *store.Store) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{repo: repo, store: s}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, id string) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id,
	})

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.store.SetError(err)
		return err
	}

	uc.store.RemoveProperty(id)
	ucLogger.Info("Property deleted", nil)
	return nil
}

// normalizeProperty приводит устаревший тип к основному набору и проверяет инварианты.
func normalizeProperty(p domain.Property) (domain.Property, error) {
	if p.Type != "" {
		if normalized, err := domain.ParsePropertyType(string(p.Type)); err == nil {
			p.Type = normalized
		}
	}
	p.Price.Currency = strings.ToUpper(strings.TrimSpace(p.Price.Currency))
	if p.Status == "" {
		p.Status = domain.PropertyStatusAvailable
	}
	if violations := p.Validate(); violations != nil {
		return p, domain.NewValidationError("invalid property", violations)
	}
	return p, nil
}
