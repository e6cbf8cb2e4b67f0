package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrOwnerHasProperties  = errors.New("owner has associated properties")
	ErrUnknownPropertyType = errors.New("unknown property type")
	ErrInvalidArgument     = errors.New("invalid argument")
)

// OwnerHasPropertiesError несет количество объектов, мешающих удалению владельца.
type OwnerHasPropertiesError struct {
	OwnerID string
	Count   int
}

func (e *OwnerHasPropertiesError) Error() string {
	return fmt.Sprintf("owner %s has %d associated properties", e.OwnerID, e.Count)
}

func (e *OwnerHasPropertiesError) Is(target error) bool {
	return target == ErrOwnerHasProperties
}

// ErrorKind — вид ошибки HTTP-клиента. Набор закрыт.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota + 1
	KindTimeout
	KindAPI
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindAPI:
		return "api"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// APIError — нормализованная ошибка обращения к API.
// Классифицируется один раз на границе HTTP-клиента.
type APIError struct {
	Kind    ErrorKind
	Message string
	// Status равен 0 для сетевых ошибок и таймаутов.
	Status  int
	Code    string
	Details map[string]interface{}
	// Fields заполняется только для KindValidation.
	Fields map[string][]string
	Err    error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NewNetworkError(message string, cause error) *APIError {
	return &APIError{Kind: KindNetwork, Message: message, Err: cause}
}

func NewTimeoutError(message string, cause error) *APIError {
	return &APIError{Kind: KindTimeout, Message: message, Err: cause}
}

func NewAPIError(status int, message, code string, details map[string]interface{}) *APIError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{Kind: KindAPI, Status: status, Message: message, Code: code, Details: details}
}

func NewValidationError(message string, fields map[string][]string) *APIError {
	if message == "" {
		message = "validation failed"
	}
	return &APIError{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Fields: fields}
}

// AsAPIError достает *APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFoundError — true для ErrNotFound и для ответа API со статусом 404.
func IsNotFoundError(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}
