package httpclient

import (
	"net/url"
	"time"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetries    = 3
	DefaultRetryDelay = time.Second
)

// DefaultRetryStatuses — ответы сервера, после которых запрос повторяется.
var DefaultRetryStatuses = []int{500, 502, 503, 504}

// Config задается при создании клиента и дальше не меняется.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	Retries       int
	RetryDelay    time.Duration
	RetryStatuses []int
}

// DefaultConfig возвращает конфигурацию с таймаутом 10с и тремя повторами.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		Timeout:       DefaultTimeout,
		Retries:       DefaultRetries,
		RetryDelay:    DefaultRetryDelay,
		RetryStatuses: append([]int(nil), DefaultRetryStatuses...),
	}
}

func (c Config) normalized() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Retries < 0 {
		c.Retries = 0
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	if c.RetryStatuses == nil {
		c.RetryStatuses = append([]int(nil), DefaultRetryStatuses...)
	}
	return c
}

// RequestConfig — настройки одного вызова.
type RequestConfig struct {
	// Retry переопределяет политику по умолчанию: GET повторяется, запись нет.
	Retry       *bool
	SkipLogging bool
	Query       url.Values
}

// Bool — хелпер для RequestConfig.Retry.
func Bool(v bool) *bool {
	return &v
}
