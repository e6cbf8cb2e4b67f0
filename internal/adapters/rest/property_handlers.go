package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/contracts"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

const propertyNotFound = "Property not found"

// ListProperties обрабатывает GET /properties
func (h *MockAPIHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})

	page, err := parsePageRequest(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	filters := domain.PropertyFilters{
		Search:  q.Get("search"),
		OwnerID: q.Get("idOwner"),
	}
	if filters.MinPrice, err = parseOptionalFloat(r, "minPrice"); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filters.MaxPrice, err = parseOptionalFloat(r, "maxPrice"); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filters.PriceAbove, err = parseOptionalFloat(r, "priceAbove"); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if raw := q.Get("propertyType"); raw != "" {
		if filters.PropertyType, err = domain.ParsePropertyType(raw); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "invalid propertyType value")
			return
		}
	}
	if raw := q.Get("status"); raw != "" {
		filters.Status = domain.PropertyStatus(raw)
		if !filters.Status.Valid() {
			WriteJSONError(w, http.StatusBadRequest, "invalid status value")
			return
		}
	}

	result, err := h.storage.ListProperties(r.Context(), filters, page)
	if err != nil {
		writeStorageError(w, logger, err, propertyNotFound)
		return
	}

	response := PropertyListResponse{
		Properties: make([]PropertyDTO, 0, len(result.Properties)),
		Pagination: toPaginationResponse(result.Pagination),
	}
	for _, p := range result.Properties {
		response.Properties = append(response.Properties, toPropertyDTO(p))
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// GetProperty обрабатывает GET /properties/{id}
func (h *MockAPIHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProperty"})

	p, err := h.storage.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, logger, err, propertyNotFound)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyDTO(*p))
}

// CreateProperty обрабатывает POST /properties
func (h *MockAPIHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateProperty"})

	body, ok := h.decodeBody(w, r, contracts.PropertySchema)
	if !ok {
		return
	}
	if missingFields(body, "name", "price", "propertyType") {
		WriteJSONError(w, http.StatusBadRequest, "Missing required fields: name, price, propertyType")
		return
	}

	dto := PropertyDTO{Status: string(domain.PropertyStatusAvailable), AreaUnit: string(domain.AreaUnitSquareMeters)}
	if err := json.Unmarshal(body, &dto); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	dto.ID, dto.CreatedAt, dto.UpdatedAt = "", nil, nil

	property, fields := dto.toDomain()
	if fields != nil {
		WriteValidationError(w, "Validation failed", fields)
		return
	}

	created, err := h.storage.CreateProperty(r.Context(), property)
	if err != nil {
		writeStorageError(w, logger, err, propertyNotFound)
		return
	}
	logger.Info("Property created", port.Fields{"property_id": created.ID})
	h.publish(r.Context(), domain.EntityProperty, domain.ActionCreated, created.ID)
	RespondWithJSON(w, http.StatusCreated, toPropertyDTO(*created))
}

// UpdateProperty обрабатывает PUT /properties/{id}: тело накладывается на текущую запись.
func (h *MockAPIHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProperty"})
	id := chi.URLParam(r, "id")

	body, ok := h.decodeBody(w, r, contracts.PropertySchema)
	if !ok {
		return
	}

	existing, err := h.storage.GetProperty(r.Context(), id)
	if err != nil {
		writeStorageError(w, logger, err, propertyNotFound)
		return
	}
	dto := toPropertyDTO(*existing)
	if err := json.Unmarshal(body, &dto); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	dto.ID = id

	property, fields := dto.toDomain()
	if fields != nil {
		WriteValidationError(w, "Validation failed", fields)
		return
	}

	updated, err := h.storage.UpdateProperty(r.Context(), property)
	if err != nil {
		writeStorageError(w, logger, err, propertyNotFound)
		return
	}
	h.publish(r.Context(), domain.EntityProperty, domain.ActionUpdated, id)
	RespondWithJSON(w, http.StatusOK, toPropertyDTO(*updated))
}

// DeleteProperty обрабатывает DELETE /properties/{id}
func (h *MockAPIHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProperty"})
	id := chi.URLParam(r, "id")

	if err := h.storage.DeleteProperty(r.Context(), id); err != nil {
		writeStorageError(w, logger, err, propertyNotFound)
		return
	}
	logger.Info("Property deleted", port.Fields{"property_id": id})
	h.publish(r.Context(), domain.EntityProperty, domain.ActionDeleted, id)
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}
