package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config — параметры подключения к Fluent Bit.
type Config struct {
	Host string
	Port int
	// TagPrefix добавляется ко всем тегам записей сервиса.
	TagPrefix string
	// Async включает буферизованную отправку в фоне.
	Async   bool
	Timeout time.Duration
}

// NewClient создает клиент Fluent Bit. Соединение не проверяется:
// первая ошибка появится при первой отправке.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Async:      cfg.Async,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}
	return client, nil
}
