package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

const maxBodyBytes = 1 << 20

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

// WriteValidationError отправляет 400 с ошибками по полям.
func WriteValidationError(w http.ResponseWriter, message string, fields map[string][]string) {
	RespondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  message,
		"errors": fields,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// writeStorageError переводит ошибки хранилища в HTTP-статусы.
func writeStorageError(w http.ResponseWriter, logger port.LoggerPort, err error, notFoundMessage string) {
	var ownerErr *domain.OwnerHasPropertiesError
	switch {
	case errors.As(err, &ownerErr):
		RespondWithJSON(w, http.StatusConflict, map[string]interface{}{
			"error":           "Cannot delete owner with associated properties",
			"propertiesCount": ownerErr.Count,
		})
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, domain.ErrInvalidArgument):
		WriteJSONError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Storage operation failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

// missingFields проверяет, что обязательные ключи присутствуют и не пусты.
func missingFields(body []byte, keys ...string) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return true
	}
	for _, key := range keys {
		value, ok := raw[key]
		if !ok {
			return true
		}
		trimmed := strings.TrimSpace(string(value))
		if trimmed == "null" || trimmed == `""` || trimmed == "" {
			return true
		}
	}
	return false
}

func parsePageRequest(r *http.Request) (domain.PageRequest, error) {
	var page domain.PageRequest
	q := r.URL.Query()
	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("invalid page value")
		}
		page.Page = v
	}
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("invalid limit value")
		}
		page.Limit = v
	}
	return page, nil
}

func parseOptionalFloat(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value", key)
	}
	return &v, nil
}
