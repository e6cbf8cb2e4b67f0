package api_client

import (
	"context"
	"fmt"
	"net/url"

	"real-estate-system/storefront/internal/adapters/httpclient"
	"real-estate-system/storefront/internal/core/domain"
)

// PropertyTraceClient — клиент истории продаж /properties/{id}/traces.
type PropertyTraceClient struct {
	http Requester
}

func NewPropertyTraceClient(http Requester) *PropertyTraceClient {
	return &PropertyTraceClient{http: http}
}

func tracesPath(propertyID string) string {
	return propertyPath(propertyID) + "/traces"
}

func tracePath(propertyID, traceID string) string {
	return tracesPath(propertyID) + "/" + url.PathEscape(traceID)
}

func (c *PropertyTraceClient) FetchList(ctx context.Context, propertyID string, query domain.TraceQuery) ([]domain.PropertyTrace, error) {
	query = query.WithDefaults()
	rc := &httpclient.RequestConfig{Query: url.Values{
		"sortBy": {string(query.SortBy)},
		"order":  {string(query.Order)},
	}}

	var resp traceListResponse
	if err := c.http.Get(ctx, tracesPath(propertyID), rc, &resp); err != nil {
		return nil, fmt.Errorf("fetch traces of property %s: %w", propertyID, err)
	}

	traces := make([]domain.PropertyTrace, 0, len(resp.Traces))
	for _, dto := range resp.Traces {
		traces = append(traces, dto.toDomain())
	}
	return traces, nil
}

func (c *PropertyTraceClient) FetchByID(ctx context.Context, propertyID, traceID string) (*domain.PropertyTrace, error) {
	var dto traceDTO
	if err := c.http.Get(ctx, tracePath(propertyID, traceID), nil, &dto); err != nil {
		return nil, fmt.Errorf("fetch trace %s: %w", traceID, err)
	}
	tr := dto.toDomain()
	return &tr, nil
}

func (c *PropertyTraceClient) Create(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	var dto traceDTO
	if err := c.http.Post(ctx, tracesPath(trace.PropertyID), fromDomainTrace(trace), nil, &dto); err != nil {
		return nil, fmt.Errorf("create trace: %w", err)
	}
	tr := dto.toDomain()
	return &tr, nil
}

func (c *PropertyTraceClient) Update(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	var dto traceDTO
	if err := c.http.Put(ctx, tracePath(trace.PropertyID, trace.ID), fromDomainTrace(trace), nil, &dto); err != nil {
		return nil, fmt.Errorf("update trace %s: %w", trace.ID, err)
	}
	tr := dto.toDomain()
	return &tr, nil
}

func (c *PropertyTraceClient) Delete(ctx context.Context, propertyID, traceID string) error {
	if err := c.http.Delete(ctx, tracePath(propertyID, traceID), nil, nil); err != nil {
		return fmt.Errorf("delete trace %s: %w", traceID, err)
	}
	return nil
}
