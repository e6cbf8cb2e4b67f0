package logger_adapter

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	"real-estate-system/storefront/internal/configs"
	"real-estate-system/storefront/internal/core/port"
	fluentlogger "real-estate-system/storefront/pkg/fluent_logger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Setup — собранная система логирования и то, что нужно закрыть при остановке.
type Setup struct {
	Logger       port.LoggerPort
	FluentClient *fluent.Fluent
	ActiveCount  int
}

func (s *Setup) Close() error {
	if s.FluentClient == nil {
		return nil
	}
	return s.FluentClient.Close()
}

// NewFromConfig собирает stdout-логгер и, если включен, Fluent Bit в один мультилоггер
// с полем service_name.
func NewFromConfig(appName string, stdout configs.StdoutLogConfig, fluentCfg configs.FluentBitConfig, writer io.Writer) (*Setup, error) {
	var active []port.LoggerPort

	stdoutLogger := NewSlogAdapter(SlogConfig{
		Writer:   writer,
		Level:    ParseLogLevel(stdout.Level),
		IsJSON:   stdout.JSON,
		UseColor: !stdout.JSON,
	})
	active = append(active, stdoutLogger)

	var fluentClient *fluent.Fluent
	if fluentCfg.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      fluentCfg.Host,
			Port:      fluentCfg.Port,
			TagPrefix: appName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := NewFluentLoggerAdapter(fluentClient, ParseLogLevel(fluentCfg.Level))
		if err != nil {
			fluentClient.Close()
			return nil, err
		}
		active = append(active, fluentAdapter)
	}

	multi, err := NewMultiloggerAdapter(active...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	return &Setup{
		Logger:       multi.WithFields(port.Fields{"service_name": appName}),
		FluentClient: fluentClient,
		ActiveCount:  len(active),
	}, nil
}

func ParseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
