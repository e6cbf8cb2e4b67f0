package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/contracts"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

const (
	imageNotFound = "Image not found"
	traceNotFound = "Trace not found"
)

// ---- images ----

// ListImages обрабатывает GET /properties/{id}/images
func (h *MockAPIHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListImages"})

	var filters domain.ImageFilters
	if raw := r.URL.Query().Get("enabledOnly"); raw != "" {
		enabledOnly, err := strconv.ParseBool(raw)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "invalid enabledOnly value")
			return
		}
		filters.EnabledOnly = enabledOnly
	}

	images, err := h.storage.ListImages(r.Context(), chi.URLParam(r, "id"), filters)
	if err != nil {
		writeStorageError(w, logger, err, propertyNotFound)
		return
	}
	response := ImageListResponse{Images: make([]ImageDTO, 0, len(images))}
	for _, img := range images {
		response.Images = append(response.Images, toImageDTO(img))
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// GetImage обрабатывает GET /properties/{id}/images/{imageId}
func (h *MockAPIHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetImage"})

	img, err := h.storage.GetImage(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "imageId"))
	if err != nil {
		writeStorageError(w, logger, err, imageNotFound)
		return
	}
	RespondWithJSON(w, http.StatusOK, toImageDTO(*img))
}

// CreateImage обрабатывает POST /properties/{id}/images. enabled по умолчанию true.
func (h *MockAPIHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateImage"})
	propertyID := chi.URLParam(r, "id")

	body, ok := h.decodeBody(w, r, contracts.ImageSchema)
	if !ok {
		return
	}
	if missingFields(body, "file") {
		WriteJSONError(w, http.StatusBadRequest, "Missing required field: file")
		return
	}

	dto := ImageDTO{Enabled: true}
	if err := json.Unmarshal(body, &dto); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	dto.ID, dto.IDProperty = "", propertyID

	created, err := h.storage.CreateImage(r.Context(), dto.toDomain())
	if err != nil {
		writeStorageError(w, logger, err, propertyNotFound)
		return
	}
	h.publish(r.Context(), domain.EntityPropertyImage, domain.ActionCreated, created.ID)
	RespondWithJSON(w, http.StatusCreated, toImageDTO(*created))
}

// UpdateImage обрабатывает PUT /properties/{id}/images/{imageId}
func (h *MockAPIHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateImage"})
	propertyID, imageID := chi.URLParam(r, "id"), chi.URLParam(r, "imageId")

	body, ok := h.decodeBody(w, r, contracts.ImageSchema)
	if !ok {
		return
	}

	existing, err := h.storage.GetImage(r.Context(), propertyID, imageID)
	if err != nil {
		writeStorageError(w, logger, err, imageNotFound)
		return
	}
	dto := toImageDTO(*existing)
	if err := json.Unmarshal(body, &dto); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	dto.ID, dto.IDProperty = imageID, propertyID

	updated, err := h.storage.UpdateImage(r.Context(), dto.toDomain())
	if err != nil {
		writeStorageError(w, logger, err, imageNotFound)
		return
	}
	h.publish(r.Context(), domain.EntityPropertyImage, domain.ActionUpdated, imageID)
	RespondWithJSON(w, http.StatusOK, toImageDTO(*updated))
}

// DeleteImage обрабатывает DELETE /properties/{id}/images/{imageId}
func (h *MockAPIHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteImage"})
	imageID := chi.URLParam(r, "imageId")

	if err := h.storage.DeleteImage(r.Context(), chi.URLParam(r, "id"), imageID); err != nil {
		writeStorageError(w, logger, err, imageNotFound)
		return
	}
	h.publish(r.Context(), domain.EntityPropertyImage, domain.ActionDeleted, imageID)
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Image deleted successfully"})
}

// ---- traces ----

// ListTraces обрабатывает GET /properties/{id}/traces?sortBy=dateSale|value&order=asc|desc
func (h *MockAPIHandler) ListTraces(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListTraces"})

	q := r.URL.Query()
	query := domain.TraceQuery{
		SortBy: domain.TraceSortField(q.Get("sortBy")),
		Order:  domain.SortOrder(q.Get("order")),
	}.WithDefaults()

	traces, err := h.storage.ListTraces(r.Context(), chi.URLParam(r, "id"), query)
	if err != nil {
		writeStorageError(w, logger, err, propertyNotFound)
		return
	}
	response := TraceListResponse{Traces: make([]TraceDTO, 0, len(traces))}
	for _, t := range traces {
		response.Traces = append(response.Traces, toTraceDTO(t))
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// GetTrace обрабатывает GET /properties/{id}/traces/{traceId}
func (h *MockAPIHandler) GetTrace(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetTrace"})

	t, err := h.storage.GetTrace(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "traceId"))
	if err != nil {
		writeStorageError(w, logger, err, traceNotFound)
		return
	}
	RespondWithJSON(w, http.StatusOK, toTraceDTO(*t))
}

// CreateTrace обрабатывает POST /properties/{id}/traces
func (h *MockAPIHandler) CreateTrace(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateTrace"})
	propertyID := chi.URLParam(r, "id")

	body, ok := h.decodeBody(w, r, contracts.TraceSchema)
	if !ok {
		return
	}
	if missingFields(body, "dateSale", "name", "value", "tax") {
		WriteJSONError(w, http.StatusBadRequest, "Missing required fields: dateSale, name, value, tax")
		return
	}

	var dto TraceDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	dto.ID, dto.IDProperty = "", propertyID

	trace, fields := dto.toDomain()
	if fields != nil {
		WriteValidationError(w, "Validation failed", fields)
		return
	}

	created, err := h.storage.CreateTrace(r.Context(), trace)
	if err != nil {
		writeStorageError(w, logger, err, propertyNotFound)
		return
	}
	h.publish(r.Context(), domain.EntityPropertyTrace, domain.ActionCreated, created.ID)
	RespondWithJSON(w, http.StatusCreated, toTraceDTO(*created))
}

// UpdateTrace обрабатывает PUT /properties/{id}/traces/{traceId}
func (h *MockAPIHandler) UpdateTrace(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateTrace"})
	propertyID, traceID := chi.URLParam(r, "id"), chi.URLParam(r, "traceId")

	body, ok := h.decodeBody(w, r, contracts.TraceSchema)
	if !ok {
		return
	}

	existing, err := h.storage.GetTrace(r.Context(), propertyID, traceID)
	if err != nil {
		writeStorageError(w, logger, err, traceNotFound)
		return
	}
	dto := toTraceDTO(*existing)
	if err := json.Unmarshal(body, &dto); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	dto.ID, dto.IDProperty = traceID, propertyID

	trace, fields := dto.toDomain()
	if fields != nil {
		WriteValidationError(w, "Validation failed", fields)
		return
	}

	updated, err := h.storage.UpdateTrace(r.Context(), trace)
	if err != nil {
		writeStorageError(w, logger, err, traceNotFound)
		return
	}
	h.publish(r.Context(), domain.EntityPropertyTrace, domain.ActionUpdated, traceID)
	RespondWithJSON(w, http.StatusOK, toTraceDTO(*updated))
}

// DeleteTrace обрабатывает DELETE /properties/{id}/traces/{traceId}
func (h *MockAPIHandler) DeleteTrace(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteTrace"})
	traceID := chi.URLParam(r, "traceId")

	if err := h.storage.DeleteTrace(r.Context(), chi.URLParam(r, "id"), traceID); err != nil {
		writeStorageError(w, logger, err, traceNotFound)
		return
	}
	h.publish(r.Context(), domain.EntityPropertyTrace, domain.ActionDeleted, traceID)
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Trace deleted successfully"})
}
