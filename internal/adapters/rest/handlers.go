package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/contracts"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

// MockAPIHandler обслуживает CRUD mock API поверх хранилища.
type MockAPIHandler struct {
	storage     port.MockStoragePort
	validator   *contracts.Validator
	events      port.ChangeEventPublisherPort
	serviceName string
	now         func() time.Time
}

func NewMockAPIHandler(storage port.MockStoragePort, validator *contracts.Validator,
	events port.ChangeEventPublisherPort, serviceName string) *MockAPIHandler {
	return &MockAPIHandler{
		storage:     storage,
		validator:   validator,
		events:      events,
		serviceName: serviceName,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Health обрабатывает GET /health
func (h *MockAPIHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now().Format(time.RFC3339),
		Service:   h.serviceName,
	})
}

// decodeBody читает тело и проверяет его по JSON-схеме.
// При ошибке ответ уже отправлен и возвращается false.
func (h *MockAPIHandler) decodeBody(w http.ResponseWriter, r *http.Request, schema string) ([]byte, bool) {
	body, err := readBody(w, r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := h.validator.Validate(schema, body); err != nil {
		var bodyErr *contracts.BodyError
		if errors.As(err, &bodyErr) {
			if len(bodyErr.Fields) == 0 {
				WriteJSONError(w, http.StatusBadRequest, bodyErr.Message)
			} else {
				WriteValidationError(w, bodyErr.Message, bodyErr.Fields)
			}
			return nil, false
		}
		contextkeys.LoggerFromContext(r.Context()).Error("Schema validation failed", err, port.Fields{"schema": schema})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return body, true
}

// publish отправляет событие об изменении. Ошибка только логируется.
func (h *MockAPIHandler) publish(ctx context.Context, entity domain.EntityName, action domain.ChangeAction, id string) {
	event := domain.ChangeEvent{Entity: entity, Action: action, ID: id, OccurredAt: h.now()}
	if err := h.events.Publish(ctx, event); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Change event was not published", port.Fields{
			"routing_key": event.RoutingKey(),
			"entity_id":   id,
			"error":       err.Error(),
		})
	}
}
