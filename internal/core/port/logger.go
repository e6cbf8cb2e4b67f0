package port

// Fields — структурированные данные, которые прикладываются к записи лога.
type Fields map[string]interface{}

// LoggerPort — контракт логирования, которым пользуется ядро и адаптеры.
// Конкретные реализации живут в internal/adapters/logger.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)

	// Error пишет сообщение вместе с ошибкой. err может быть nil.
	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)

	// WithFields возвращает новый логгер с добавленным контекстом,
	// исходный экземпляр не меняется.
	WithFields(fields Fields) LoggerPort
}
