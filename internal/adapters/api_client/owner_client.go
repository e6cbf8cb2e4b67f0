package api_client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"real-estate-system/storefront/internal/adapters/httpclient"
	"real-estate-system/storefront/internal/core/domain"
)

// OwnerClient — клиент ресурса /owners.
type OwnerClient struct {
	http Requester
}

func NewOwnerClient(http Requester) *OwnerClient {
	return &OwnerClient{http: http}
}

func ownerPath(id string) string {
	return "/owners/" + url.PathEscape(id)
}

func (c *OwnerClient) FetchList(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) (*domain.OwnerPage, error) {
	page = page.WithDefaults(domain.DefaultOwnerPageLimit)

	query := url.Values{}
	if s := strings.TrimSpace(filters.Search); s != "" {
		query.Set("search", s)
	}
	query = pageValues(query, page)

	var resp ownerListResponse
	if err := c.http.Get(ctx, "/owners", &httpclient.RequestConfig{Query: query}, &resp); err != nil {
		return nil, fmt.Errorf("fetch owners: %w", err)
	}

	result := &domain.OwnerPage{
		Owners:     make([]domain.Owner, 0, len(resp.Owners)),
		Pagination: resp.Pagination.toDomain(),
	}
	for _, dto := range resp.Owners {
		result.Owners = append(result.Owners, dto.toDomain())
	}
	return result, nil
}

func (c *OwnerClient) FetchByID(ctx context.Context, id string) (*domain.Owner, error) {
	var dto ownerDTO
	if err := c.http.Get(ctx, ownerPath(id), nil, &dto); err != nil {
		return nil, fmt.Errorf("fetch owner %s: %w", id, err)
	}
	o := dto.toDomain()
	return &o, nil
}

func (c *OwnerClient) Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	var dto ownerDTO
	if err := c.http.Post(ctx, "/owners", fromDomainOwner(owner), nil, &dto); err != nil {
		return nil, fmt.Errorf("create owner: %w", err)
	}
	o := dto.toDomain()
	return &o, nil
}

func (c *OwnerClient) Update(ctx context.Context, id string, owner domain.Owner) (*domain.Owner, error) {
	var dto ownerDTO
	if err := c.http.Put(ctx, ownerPath(id), fromDomainOwner(owner), nil, &dto); err != nil {
		return nil, fmt.Errorf("update owner %s: %w", id, err)
	}
	o := dto.toDomain()
	return &o, nil
}

func (c *OwnerClient) Delete(ctx context.Context, id string) error {
	if err := c.http.Delete(ctx, ownerPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete owner %s: %w", id, err)
	}
	return nil
}
