package api_client

import (
	"context"
	"fmt"

	"real-estate-system/storefront/internal/adapters/httpclient"
	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

// PropertyClient — клиент ресурса /properties. Ничего не кэширует.
type PropertyClient struct {
	http Requester
}

func NewPropertyClient(http Requester) *PropertyClient {
	return &PropertyClient{http: http}
}

func (c *PropertyClient) FetchList(ctx context.Context, filters domain.PropertyFilters, page domain.PageRequest) (*domain.PropertyPage, error) {
	page = page.WithDefaults(domain.DefaultPropertyPageLimit)
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyApiClient",
		"method":    "FetchList",
	})

	query := pageValues(filters.Values(), page)
	var resp propertyListResponse
	if err := c.http.Get(ctx, "/properties", &httpclient.RequestConfig{Query: query}, &resp); err != nil {
		return nil, fmt.Errorf("fetch properties: %w", err)
	}

	result := &domain.PropertyPage{
		Properties: make([]domain.Property, 0, len(resp.Properties)),
		Pagination: resp.Pagination.toDomain(),
	}
	for _, dto := range resp.Properties {
		result.Properties = append(result.Properties, dto.toDomain())
	}

	logger.Debug("Properties received", port.Fields{"count": len(result.Properties), "total": result.Pagination.Total})
	return result, nil
}

func (c *PropertyClient) FetchByID(ctx context.Context, id string) (*domain.Property, error) {
	var dto propertyDTO
	if err := c.http.Get(ctx, propertyPath(id), nil, &dto); err != nil {
		return nil, fmt.Errorf("fetch property %s: %w", id, err)
	}
	p := dto.toDomain()
	return &p, nil
}

func (c *PropertyClient) Create(ctx context.Context, property domain.Property) (*domain.Property, error) {
	var dto propertyDTO
	if err := c.http.Post(ctx, "/properties", fromDomainProperty(property), nil, &dto); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	p := dto.toDomain()
	return &p, nil
}

func (c *PropertyClient) Update(ctx context.Context, id string, property domain.Property) (*domain.Property, error) {
	var dto propertyDTO
	if err := c.http.Put(ctx, propertyPath(id), fromDomainProperty(property), nil, &dto); err != nil {
		return nil, fmt.Errorf("update property %s: %w", id, err)
	}
	p := dto.toDomain()
	return &p, nil
}

func (c *PropertyClient) Delete(ctx context.Context, id string) error {
	if err := c.http.Delete(ctx, propertyPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete property %s: %w", id, err)
	}
	return nil
}
