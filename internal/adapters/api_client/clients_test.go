package api_client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"real-estate-system/storefront/internal/adapters/httpclient"
	"real-estate-system/storefront/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]interface{}
}

// newTestServer отвечает заданным телом и запоминает последний запрос.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.Query()
		rec.Body = nil
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func newRequester(baseURL string) *httpclient.Client {
	return httpclient.NewClient(httpclient.Config{
		BaseURL:    baseURL,
		Timeout:    time.Second,
		Retries:    0,
		RetryDelay: time.Millisecond,
	}, nil)
}

func TestPropertyClientFetchListDefaultsAndFilters(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, `{
		"properties": [
			{"id":"p1","name":"Villa Sol","price":{"amount":2500000,"currency":"USD"},"propertyType":"villa","status":"available","idOwner":"o1"}
		],
		"pagination": {"page":1,"limit":12,"total":1,"totalPages":1,"hasNext":false,"hasPrev":false}
	}`)
	client := NewPropertyClient(newRequester(server.URL))

	minPrice := 1000.0
	page, err := client.FetchList(context.Background(), domain.PropertyFilters{Search: "sol", MinPrice: &minPrice}, domain.PageRequest{})

	require.NoError(t, err)
	assert.Equal(t, "/properties", rec.Path)
	assert.Equal(t, url.Values{
		"page":     {"1"},
		"limit":    {"12"},
		"search":   {"sol"},
		"minPrice": {"1000"},
	}, rec.Query)

	require.Len(t, page.Properties, 1)
	p := page.Properties[0]
	assert.Equal(t, domain.PropertyTypeHouse, p.Type)
	assert.Equal(t, "o1", p.OwnerID)
	assert.True(t, p.IsExpensive())
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestPropertyClientCreateSendsBody(t *testing.T) {
	server, rec := newTestServer(t, http.StatusCreated, `{"id":"new","name":"Loft","price":{"amount":10,"currency":"EUR"},"propertyType":"apartment"}`)
	client := NewPropertyClient(newRequester(server.URL))

	created, err := client.Create(context.Background(), domain.Property{
		ID:    "ignored",
		Name:  "Loft",
		Price: domain.Price{Amount: 10, Currency: "EUR"},
		Type:  domain.PropertyTypeApartment,
	})

	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "Loft", rec.Body["name"])
	assert.NotContains(t, rec.Body, "id")
}

func TestPropertyClientDeleteKeepsAPIError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusNotFound, `{"error":"Property not found"}`)
	client := NewPropertyClient(newRequester(server.URL))

	err := client.Delete(context.Background(), "missing")

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Property not found", apiErr.Message)
}

func TestOwnerClientFetchListDefaults(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, `{
		"owners": [{"id":"o1","name":"Ana","address":"Main 1","birthday":"1985-03-12"}],
		"pagination": {"page":1,"limit":100,"total":1,"totalPages":1}
	}`)
	client := NewOwnerClient(newRequester(server.URL))

	page, err := client.FetchList(context.Background(), domain.OwnerFilters{}, domain.PageRequest{})

	require.NoError(t, err)
	assert.Equal(t, url.Values{"page": {"1"}, "limit": {"100"}}, rec.Query)
	require.Len(t, page.Owners, 1)
	assert.Equal(t, 1985, page.Owners[0].Birthday.Year())
}

func TestOwnerClientCreateFormatsBirthday(t *testing.T) {
	server, rec := newTestServer(t, http.StatusCreated, `{"id":"o2","name":"Bo","address":"X","birthday":"1990-01-02"}`)
	client := NewOwnerClient(newRequester(server.URL))

	_, err := client.Create(context.Background(), domain.Owner{
		Name:     "Bo",
		Address:  "X",
		Birthday: time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "1990-01-02", rec.Body["birthday"])
}

func TestImageClientEnabledOnly(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, `{"images":[{"id":"i1","idProperty":"p1","file":"a.jpg","enabled":true}]}`)
	client := NewPropertyImageClient(newRequester(server.URL))

	images, err := client.FetchList(context.Background(), "p1", domain.ImageFilters{EnabledOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "/properties/p1/images", rec.Path)
	assert.Equal(t, "true", rec.Query.Get("enabledOnly"))
	require.Len(t, images, 1)
	assert.True(t, images[0].Enabled)

	_, err = client.FetchList(context.Background(), "p1", domain.ImageFilters{})
	require.NoError(t, err)
	assert.NotContains(t, rec.Query, "enabledOnly")
}

func TestTraceClientSortDefaults(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, `{"traces":[]}`)
	client := NewPropertyTraceClient(newRequester(server.URL))

	_, err := client.FetchList(context.Background(), "p1", domain.TraceQuery{})
	require.NoError(t, err)
	assert.Equal(t, "/properties/p1/traces", rec.Path)
	assert.Equal(t, "dateSale", rec.Query.Get("sortBy"))
	assert.Equal(t, "desc", rec.Query.Get("order"))

	_, err = client.FetchList(context.Background(), "p1", domain.TraceQuery{SortBy: domain.TraceSortByValue, Order: domain.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, "value", rec.Query.Get("sortBy"))
	assert.Equal(t, "asc", rec.Query.Get("order"))
}
