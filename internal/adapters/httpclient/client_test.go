package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		Timeout:    time.Second,
		Retries:    2,
		RetryDelay: time.Millisecond,
	}
}

func TestGetDecodesBodyAndSendsHeaders(t *testing.T) {
	var gotTrace, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTrace = r.Header.Get("X-Trace-ID")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/properties", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Loft"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL+"/api/"), nil)
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")

	var out struct {
		Name string `json:"name"`
	}
	err := client.Get(ctx, "/properties", &RequestConfig{Query: url.Values{"page": {"2"}}}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Loft", out.Name)
	assert.Equal(t, "trace-1", gotTrace)
	assert.Equal(t, "page=2", gotQuery)
}

func TestGetRetriesConfiguredStatuses(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()
	client := NewClient(testConfig(server.URL), registry)

	err := client.Get(context.Background(), "/health", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 2.0, testutil.ToFloat64(client.metrics.retries.WithLabelValues(http.MethodGet)))
	assert.Equal(t, 1.0, testutil.ToFloat64(client.metrics.requests.WithLabelValues(http.MethodGet, "success")))
}

func TestGetGivesUpAfterRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream down","code":"UPSTREAM"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	err := client.Get(context.Background(), "/properties", nil, nil)

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindAPI, apiErr.Kind)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Message)
	assert.Equal(t, "UPSTREAM", apiErr.Code)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWritesAreNotRetriedByDefault(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	err := client.Post(context.Background(), "/owners", map[string]string{"name": "A"}, nil, nil)

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "Service Unavailable", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	atomic.StoreInt32(&calls, 0)
	_ = client.Put(context.Background(), "/owners/1", map[string]string{}, &RequestConfig{Retry: Bool(true)}, nil)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Property not found"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	err := client.Get(context.Background(), "/properties/x", nil, nil)

	assert.True(t, domain.IsNotFoundError(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBadRequestBecomesValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid request body","errors":{"price.amount":["must be >= 0"]}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	err := client.Post(context.Background(), "/properties", map[string]int{"price": -1}, nil, nil)

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindValidation, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid request body", apiErr.Message)
	assert.Equal(t, []string{"must be >= 0"}, apiErr.Fields["price.amount"])
}

func TestNetworkErrorHasNoStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	cfg := testConfig(baseURL)
	cfg.Retries = 1
	client := NewClient(cfg, nil)
	err := client.Get(context.Background(), "/properties", nil, nil)

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindNetwork, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Status)
}

func TestTimeoutIsRetriedAndClassified(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Timeout = 30 * time.Millisecond
	cfg.Retries = 1
	client := NewClient(cfg, nil)

	err := client.Get(context.Background(), "/slow", nil, nil)

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindTimeout, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCancelledContextStopsRetrying(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.RetryDelay = time.Second
	client := NewClient(cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := client.Get(ctx, "/properties", nil, nil)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestInvalidJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not-json`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	var out map[string]interface{}
	err := client.Get(context.Background(), "/x", nil, &out)

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid_response", apiErr.Code)
	assert.Error(t, apiErr.Err)
}
