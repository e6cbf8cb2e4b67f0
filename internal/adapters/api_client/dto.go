package api_client

import (
	"strings"
	"time"

	"real-estate-system/storefront/internal/core/domain"
)

// Структуры ниже повторяют JSON mock API (internal/adapters/rest/dto.go).

type paginationDTO struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func (p paginationDTO) toDomain() domain.Pagination {
	return domain.Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

type priceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type locationDTO struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

type propertyDTO struct {
	ID           string      `json:"id,omitempty"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Price        priceDTO    `json:"price"`
	Location     locationDTO `json:"location"`
	PropertyType string      `json:"propertyType"`
	Bedrooms     int         `json:"bedrooms"`
	Bathrooms    int         `json:"bathrooms"`
	Area         float64     `json:"area"`
	AreaUnit     string      `json:"areaUnit,omitempty"`
	Features     []string    `json:"features,omitempty"`
	Images       []string    `json:"images,omitempty"`
	Status       string      `json:"status,omitempty"`
	IDOwner      string      `json:"idOwner,omitempty"`
	CodeInternal string      `json:"codeInternal,omitempty"`
	Year         int         `json:"year,omitempty"`
	CreatedAt    *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time  `json:"updatedAt,omitempty"`
}

type propertyListResponse struct {
	Properties []propertyDTO `json:"properties"`
	Pagination paginationDTO `json:"pagination"`
}

func (d propertyDTO) toDomain() domain.Property {
	propertyType, err := domain.ParsePropertyType(d.PropertyType)
	if err != nil {
		// Неизвестный тип оставляем как есть, чтобы не терять запись.
		propertyType = domain.PropertyType(strings.ToLower(d.PropertyType))
	}
	p := domain.Property{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       domain.Price{Amount: d.Price.Amount, Currency: d.Price.Currency},
		Location: domain.Location{
			Address: d.Location.Address,
			City:    d.Location.City,
			Country: d.Location.Country,
		},
		Type:         propertyType,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		Area:         d.Area,
		AreaUnit:     domain.AreaUnit(d.AreaUnit),
		Features:     d.Features,
		Images:       d.Images,
		Status:       domain.PropertyStatus(d.Status),
		OwnerID:      d.IDOwner,
		CodeInternal: d.CodeInternal,
		Year:         d.Year,
	}
	if d.CreatedAt != nil {
		p.CreatedAt = *d.CreatedAt
	}
	if d.UpdatedAt != nil {
		p.UpdatedAt = *d.UpdatedAt
	}
	return p
}

// fromDomainProperty строит тело запроса. Служебные поля (id, даты) не отправляются.
func fromDomainProperty(p domain.Property) propertyDTO {
	return propertyDTO{
		Name:        p.Name,
		Description: p.Description,
		Price:       priceDTO{Amount: p.Price.Amount, Currency: p.Price.Currency},
		Location: locationDTO{
			Address: p.Location.Address,
			City:    p.Location.City,
			Country: p.Location.Country,
		},
		PropertyType: string(p.Type),
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		AreaUnit:     string(p.AreaUnit),
		Features:     p.Features,
		Images:       p.Images,
		Status:       string(p.Status),
		IDOwner:      p.OwnerID,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
	}
}

type ownerDTO struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Photo    string `json:"photo,omitempty"`
	Birthday string `json:"birthday"`
}

type ownerListResponse struct {
	Owners     []ownerDTO    `json:"owners"`
	Pagination paginationDTO `json:"pagination"`
}

func (d ownerDTO) toDomain() domain.Owner {
	o := domain.Owner{ID: d.ID, Name: d.Name, Address: d.Address, Photo: d.Photo}
	if birthday, err := domain.ParseBirthday(d.Birthday); err == nil {
		o.Birthday = birthday
	}
	return o
}

func fromDomainOwner(o domain.Owner) ownerDTO {
	dto := ownerDTO{Name: o.Name, Address: o.Address, Photo: o.Photo}
	if !o.Birthday.IsZero() {
		dto.Birthday = o.Birthday.Format(domain.BirthdayLayout)
	}
	return dto
}

type imageDTO struct {
	ID         string `json:"id,omitempty"`
	IDProperty string `json:"idProperty,omitempty"`
	File       string `json:"file"`
	Enabled    bool   `json:"enabled"`
}

type imageListResponse struct {
	Images []imageDTO `json:"images"`
}

func (d imageDTO) toDomain() domain.PropertyImage {
	return domain.PropertyImage{ID: d.ID, PropertyID: d.IDProperty, File: d.File, Enabled: d.Enabled}
}

func fromDomainImage(img domain.PropertyImage) imageDTO {
	return imageDTO{IDProperty: img.PropertyID, File: img.File, Enabled: img.Enabled}
}

type traceDTO struct {
	ID         string    `json:"id,omitempty"`
	IDProperty string    `json:"idProperty,omitempty"`
	DateSale   time.Time `json:"dateSale"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Tax        float64   `json:"tax"`
}

type traceListResponse struct {
	Traces []traceDTO `json:"traces"`
}

func (d traceDTO) toDomain() domain.PropertyTrace {
	return domain.PropertyTrace{
		ID:         d.ID,
		PropertyID: d.IDProperty,
		DateSale:   d.DateSale,
		Name:       d.Name,
		Value:      d.Value,
		Tax:        d.Tax,
	}
}

func fromDomainTrace(tr domain.PropertyTrace) traceDTO {
	return traceDTO{
		IDProperty: tr.PropertyID,
		DateSale:   tr.DateSale,
		Name:       tr.Name,
		Value:      tr.Value,
		Tax:        tr.Tax,
	}
}
