package api_client

import (
	"context"
	"net/url"
	"strconv"

	"real-estate-system/storefront/internal/adapters/httpclient"
	"real-estate-system/storefront/internal/core/domain"
)

// Requester — то, что API-клиентам нужно от HTTP-клиента.
type Requester interface {
	Get(ctx context.Context, path string, rc *httpclient.RequestConfig, out interface{}) error
	Post(ctx context.Context, path string, body interface{}, rc *httpclient.RequestConfig, out interface{}) error
	Put(ctx context.Context, path string, body interface{}, rc *httpclient.RequestConfig, out interface{}) error
	Delete(ctx context.Context, path string, rc *httpclient.RequestConfig, out interface{}) error
}

func pageValues(v url.Values, page domain.PageRequest) url.Values {
	if v == nil {
		v = url.Values{}
	}
	v.Set("page", strconv.Itoa(page.Page))
	v.Set("limit", strconv.Itoa(page.Limit))
	return v
}

func propertyPath(id string) string {
	return "/properties/" + url.PathEscape(id)
}
