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

const ownerNotFound = "Owner not found"

// ListOwners обрабатывает GET /owners
func (h *MockAPIHandler) ListOwners(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListOwners"})

	page, err := parsePageRequest(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.storage.ListOwners(r.Context(), domain.OwnerFilters{Search: r.URL.Query().Get("search")}, page)
	if err != nil {
		writeStorageError(w, logger, err, ownerNotFound)
		return
	}

	response := OwnerListResponse{
		Owners:     make([]OwnerDTO, 0, len(result.Owners)),
		Pagination: toPaginationResponse(result.Pagination),
	}
	for _, o := range result.Owners {
		response.Owners = append(response.Owners, toOwnerDTO(o))
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// GetOwner обрабатывает GET /owners/{id}
func (h *MockAPIHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetOwner"})

	o, err := h.storage.GetOwner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, logger, err, ownerNotFound)
		return
	}
	RespondWithJSON(w, http.StatusOK, toOwnerDTO(*o))
}

// CreateOwner обрабатывает POST /owners
func (h *MockAPIHandler) CreateOwner(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateOwner"})

	body, ok := h.decodeBody(w, r, contracts.OwnerSchema)
	if !ok {
		return
	}
	if missingFields(body, "name", "address", "birthday") {
		WriteJSONError(w, http.StatusBadRequest, "Missing required fields: name, address, birthday")
		return
	}

	var dto OwnerDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	dto.ID = ""

	owner, fields := dto.toDomain()
	if fields != nil {
		WriteValidationError(w, "Validation failed", fields)
		return
	}

	created, err := h.storage.CreateOwner(r.Context(), owner)
	if err != nil {
		writeStorageError(w, logger, err, ownerNotFound)
		return
	}
	logger.Info("Owner created", port.Fields{"owner_id": created.ID})
	h.publish(r.Context(), domain.EntityOwner, domain.ActionCreated, created.ID)
	RespondWithJSON(w, http.StatusCreated, toOwnerDTO(*created))
}

// UpdateOwner обрабатывает PUT /owners/{id}
func (h *MockAPIHandler) UpdateOwner(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateOwner"})
	id := chi.URLParam(r, "id")

	body, ok := h.decodeBody(w, r, contracts.OwnerSchema)
	if !ok {
		return
	}

	existing, err := h.storage.GetOwner(r.Context(), id)
	if err != nil {
		writeStorageError(w, logger, err, ownerNotFound)
		return
	}
	dto := toOwnerDTO(*existing)
	if err := json.Unmarshal(body, &dto); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	dto.ID = id

	owner, fields := dto.toDomain()
	if fields != nil {
		WriteValidationError(w, "Validation failed", fields)
		return
	}

	updated, err := h.storage.UpdateOwner(r.Context(), owner)
	if err != nil {
		writeStorageError(w, logger, err, ownerNotFound)
		return
	}
	h.publish(r.Context(), domain.EntityOwner, domain.ActionUpdated, id)
	RespondWithJSON(w, http.StatusOK, toOwnerDTO(*updated))
}

// DeleteOwner обрабатывает DELETE /owners/{id}. Владелец с объектами не удаляется (409).
func (h *MockAPIHandler) DeleteOwner(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteOwner"})
	id := chi.URLParam(r, "id")

	if err := h.storage.DeleteOwner(r.Context(), id); err != nil {
		writeStorageError(w, logger, err, ownerNotFound)
		return
	}
	logger.Info("Owner deleted", port.Fields{"owner_id": id})
	h.publish(r.Context(), domain.EntityOwner, domain.ActionDeleted, id)
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Owner deleted successfully"})
}
