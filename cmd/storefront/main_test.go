package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"real-estate-system/storefront/internal/adapters/memory"
	rabbitmq_adapter "real-estate-system/storefront/internal/adapters/rabbitmq"
	"real-estate-system/storefront/internal/adapters/rest"
	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/contracts"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/fixtures"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	data, err := fixtures.Load()
	require.NoError(t, err)
	storage := memory.NewStorage()
	require.NoError(t, storage.Seed(context.Background(), data))

	validator, err := contracts.NewValidator()
	require.NoError(t, err)

	handlers := rest.NewMockAPIHandler(storage, validator, rabbitmq_adapter.NoopChangeEventPublisher{}, "mock-properties-api")
	srv := httptest.NewServer(rest.NewRouter(rest.ServerConfig{}, handlers, contextkeys.NoopLogger(), nil))
	t.Cleanup(srv.Close)
	return srv
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, apiURL string, args ...string) runResult {
	t.Helper()
	t.Setenv("HTTP_RETRIES", "0")
	t.Setenv("HTTP_RETRY_DELAY_MS", "1")
	t.Setenv("STDOUT_LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--api-url", apiURL}, args...))

	err := cmd.ExecuteContext(context.Background())
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestPropertiesListExpensiveFilter(t *testing.T) {
	srv := newTestServer(t)

	res := run(t, srv.URL+"/api", "properties", "list", "--filter", "expensive")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Seaside Villa")
	assert.Contains(t, res.stdout, "2,450,000 USD")
	assert.Contains(t, res.stdout, "Tech Campus Land")
	assert.NotContains(t, res.stdout, "Downtown Loft")
	assert.NotContains(t, res.stdout, "Harbour Office")
	assert.Contains(t, res.stdout, "Page 1 of 1 (4 total)")

	res = run(t, srv.URL+"/api", "properties", "list", "--filter", "expensive", "--limit", "100")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "Harbour Office")
	assert.Contains(t, res.stdout, "Page 1 of 1 (4 total)")
}

func TestPropertiesListUsesLanguageForPrices(t *testing.T) {
	srv := newTestServer(t)

	res := run(t, srv.URL+"/api", "--lang", "de-DE", "properties", "list", "--search", "seaside")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "2.450.000 USD")
	assert.Contains(t, res.stdout, "Page 1 of 1 (1 total)")
}

func TestPropertiesListFallsBackWhenAPIUnavailable(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/api"
	srv.Close()

	res := run(t, url, "properties", "list")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "No properties found.")
	assert.Contains(t, res.stderr, "Warning: request failed, showing fallback data")
}

func TestPropertiesShow(t *testing.T) {
	srv := newTestServer(t)

	res := run(t, srv.URL+"/api", "properties", "show", "prop-3")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Family House")
	assert.Contains(t, res.stdout, "640,000 EUR")
	assert.Contains(t, res.stdout, "sold")

	res = run(t, srv.URL+"/api", "properties", "show", "missing")
	require.Error(t, res.err)
	assert.True(t, domain.IsNotFoundError(res.err))
}

func TestPropertiesCreateAndUpdate(t *testing.T) {
	srv := newTestServer(t)

	res := run(t, srv.URL+"/api", "properties", "create",
		"--name", "Harbour View", "--price", "525000", "--currency", "eur",
		"--type", "studio", "--city", "Lisbon", "--bedrooms", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Harbour View")
	assert.Contains(t, res.stdout, "Apartment")
	assert.Contains(t, res.stdout, "525,000 EUR")
	assert.Contains(t, res.stderr, "[success] Property")

	res = run(t, srv.URL+"/api", "properties", "update", "prop-2", "--price", "400000")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Downtown Loft")
	assert.Contains(t, res.stdout, "400,000 USD")
}

func TestPropertiesCreateRejectsInvalidCurrency(t *testing.T) {
	srv := newTestServer(t)

	res := run(t, srv.URL+"/api", "properties", "create",
		"--name", "Bad", "--price", "1", "--currency", "XX", "--type", "house")
	require.Error(t, res.err)

	apiErr, ok := domain.AsAPIError(res.err)
	require.True(t, ok)
	assert.Equal(t, domain.KindValidation, apiErr.Kind)
	assert.Contains(t, describeError(res.err), "price.currency")
}

func TestOwnersDeleteWithPropertiesConflict(t *testing.T) {
	srv := newTestServer(t)

	res := run(t, srv.URL+"/api", "owners", "delete", "owner-2")
	require.Error(t, res.err)

	apiErr, ok := domain.AsAPIError(res.err)
	require.True(t, ok)
	assert.Equal(t, 409, apiErr.Status)
}

func TestOwnersCreateAndList(t *testing.T) {
	srv := newTestServer(t)

	res := run(t, srv.URL+"/api", "owners", "create",
		"--name", "Ana Souza", "--address", "Rua Augusta 10, Lisbon", "--birthday", "1988-06-01")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1988-06-01")

	res = run(t, srv.URL+"/api", "owners", "list", "--search", "souza")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Ana Souza")
	assert.Contains(t, res.stdout, "(1 total)")
}

func TestImagesToggle(t *testing.T) {
	srv := newTestServer(t)

	res := run(t, srv.URL+"/api", "images", "toggle", "prop-2", "img-2-2")
	require.NoError(t, res.err)
	assert.Regexp(t, `img-2-2\s+true`, res.stdout)

	res = run(t, srv.URL+"/api", "images", "list", "prop-2", "--enabled-only")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "img-2-1")
	assert.Contains(t, res.stdout, "img-2-2")
}

func TestTracesListSortedByValue(t *testing.T) {
	srv := newTestServer(t)

	res := run(t, srv.URL+"/api", "traces", "list", "prop-3", "--sort-by", "value", "--order", "asc")
	require.NoError(t, res.err)

	first := strings.Index(res.stdout, "First owner")
	second := strings.Index(res.stdout, "Second owner")
	current := strings.Index(res.stdout, "Current owner")
	require.True(t, first >= 0 && second >= 0 && current >= 0, res.stdout)
	assert.Less(t, first, second)
	assert.Less(t, second, current)
}

func TestTracesAddRequiresValidDate(t *testing.T) {
	srv := newTestServer(t)

	res := run(t, srv.URL+"/api", "traces", "add", "prop-3",
		"--date", "yesterday", "--name", "Next owner", "--value", "700000", "--tax", "21000")
	require.Error(t, res.err)
	assert.Contains(t, describeError(res.err), "dateSale")

	res = run(t, srv.URL+"/api", "traces", "add", "prop-3",
		"--date", "2025-01-15", "--name", "Next owner", "--value", "700000", "--tax", "21000")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "2025-01-15")
}

func TestThemeNext(t *testing.T) {
	res := run(t, "http://127.0.0.1:1/api", "theme", "next", "--current", "system")
	require.NoError(t, res.err)
	assert.Equal(t, "light\n", res.stdout)

	res = run(t, "http://127.0.0.1:1/api", "theme", "next", "--current", "neon")
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, domain.ErrInvalidArgument))
}

func TestDescribeErrorListsFields(t *testing.T) {
	err := domain.NewValidationError("invalid property", map[string][]string{
		"name":         {"is required"},
		"propertyType": {"unknown property type"},
	})
	assert.Equal(t, "invalid property\n  name: is required\n  propertyType: unknown property type", describeError(err))
	assert.Equal(t, "plain", describeError(errors.New("plain")))
}
