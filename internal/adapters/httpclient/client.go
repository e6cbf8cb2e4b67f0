package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"

	"github.com/prometheus/client_golang/prometheus"
)

const maxResponseBytes = 8 << 20

// Client — HTTP-клиент mock API: таймаут на попытку, ограниченные повторы
// и нормализация ошибок в *domain.APIError.
type Client struct {
	cfg        Config
	httpClient *http.Client
	metrics    *clientMetrics
}

// NewClient создает клиент. registerer может быть nil, тогда метрики не публикуются.
func NewClient(cfg Config, registerer prometheus.Registerer) *Client {
	return &Client{
		cfg:        cfg.normalized(),
		httpClient: &http.Client{},
		metrics:    newClientMetrics(registerer),
	}
}

func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

func (c *Client) Get(ctx context.Context, path string, rc *RequestConfig, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, rc, out)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}, rc *RequestConfig, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, rc, out)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}, rc *RequestConfig, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, rc, out)
}

func (c *Client) Delete(ctx context.Context, path string, rc *RequestConfig, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, rc, out)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, rc *RequestConfig, out interface{}) error {
	if rc == nil {
		rc = &RequestConfig{}
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "HTTPClient",
		"http_method": method,
		"http_path":   path,
	})
	if rc.SkipLogging {
		logger = contextkeys.NoopLogger()
	}

	fullURL := c.buildURL(path, rc)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &domain.APIError{Kind: domain.KindNetwork, Message: "failed to encode request body", Err: err}
		}
	}

	attempts := 1
	if c.retryEnabled(method, rc) {
		attempts += c.cfg.Retries
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		logger.Debug("Sending request", port.Fields{"url": fullURL, "attempt": attempt})

		status, err := c.attempt(ctx, method, fullURL, payload, out)
		if err == nil {
			c.observe(method, "success", start)
			logger.Info("Request completed", port.Fields{
				"status_code": status,
				"attempt":     attempt,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			return nil
		}
		lastErr = err

		if attempt == attempts || !c.shouldRetry(ctx, err) {
			break
		}

		c.metrics.retries.WithLabelValues(method).Inc()
		logger.Warn("Request failed, retrying", port.Fields{
			"attempt":     attempt,
			"max_attempt": attempts,
			"delay_ms":    c.cfg.RetryDelay.Milliseconds(),
			"error":       err.Error(),
		})

		if waitErr := sleepContext(ctx, c.cfg.RetryDelay); waitErr != nil {
			break
		}
	}

	outcome := "error"
	if apiErr, ok := domain.AsAPIError(lastErr); ok {
		outcome = apiErr.Kind.String()
	}
	c.observe(method, outcome, start)
	logger.Error("Request failed", lastErr, port.Fields{"duration_ms": time.Since(start).Milliseconds()})
	return lastErr
}

// attempt выполняет одну попытку с собственным таймаутом.
func (c *Client) attempt(ctx context.Context, method, fullURL string, payload []byte, out interface{}) (int, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, fullURL, bodyReader)
	if err != nil {
		return 0, domain.NewNetworkError("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(contextkeys.TraceIDHeader, traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, classifyTransportError(ctx, attemptCtx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, classifyTransportError(ctx, attemptCtx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, decodeErrorResponse(resp.StatusCode, respBody)
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			apiErr := domain.NewAPIError(resp.StatusCode, "invalid response body", "invalid_response", nil)
			apiErr.Err = err
			return resp.StatusCode, apiErr
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) buildURL(path string, rc *RequestConfig) string {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if len(rc.Query) > 0 {
		u += "?" + rc.Query.Encode()
	}
	return u
}

func (c *Client) retryEnabled(method string, rc *RequestConfig) bool {
	if rc.Retry != nil {
		return *rc.Retry
	}
	return method == http.MethodGet
}

func (c *Client) shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		return false
	}
	switch apiErr.Kind {
	case domain.KindNetwork, domain.KindTimeout:
		return true
	case domain.KindAPI:
		for _, status := range c.cfg.RetryStatuses {
			if apiErr.Status == status {
				return true
			}
		}
	}
	return false
}

func (c *Client) observe(method, outcome string, start time.Time) {
	c.metrics.requests.WithLabelValues(method, outcome).Inc()
	c.metrics.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// classifyTransportError отличает таймаут попытки от прочих сетевых ошибок.
// Отмена родительского контекста считается сетевой ошибкой.
func classifyTransportError(parent, attemptCtx context.Context, err error) *domain.APIError {
	if parent.Err() != nil {
		return domain.NewNetworkError("request cancelled", parent.Err())
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewTimeoutError("request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewTimeoutError("request timed out", err)
	}
	return domain.NewNetworkError(fmt.Sprintf("network error: %v", err), err)
}

type errorBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Errors  map[string][]string `json:"errors"`
}

// decodeErrorResponse строит ошибку из ответа 4xx/5xx. 400 всегда KindValidation.
func decodeErrorResponse(status int, body []byte) *domain.APIError {
	var parsed errorBody
	var details map[string]interface{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &details); err == nil {
			_ = json.Unmarshal(body, &parsed)
		} else {
			details = map[string]interface{}{"body": string(body)}
		}
	}

	message := parsed.Error
	if message == "" {
		message = parsed.Message
	}

	if status == http.StatusBadRequest {
		apiErr := domain.NewValidationError(message, parsed.Errors)
		apiErr.Code = parsed.Code
		apiErr.Details = details
		return apiErr
	}
	return domain.NewAPIError(status, message, parsed.Code, details)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
