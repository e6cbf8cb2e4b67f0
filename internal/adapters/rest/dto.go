package rest

import (
	"fmt"
	"strings"
	"time"

	"real-estate-system/storefront/internal/core/domain"
)

type PaginationResponse struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func toPaginationResponse(p domain.Pagination) PaginationResponse {
	return PaginationResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

type PriceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type LocationDTO struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// PropertyDTO — объект на проводе. Тело PUT накладывается поверх текущего состояния.
type PropertyDTO struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Price        PriceDTO    `json:"price"`
	Location     LocationDTO `json:"location"`
	PropertyType string      `json:"propertyType"`
	Bedrooms     int         `json:"bedrooms"`
	Bathrooms    int         `json:"bathrooms"`
	Area         float64     `json:"area"`
	AreaUnit     string      `json:"areaUnit,omitempty"`
	Features     []string    `json:"features"`
	Images       []string    `json:"images"`
	Status       string      `json:"status"`
	IDOwner      string      `json:"idOwner,omitempty"`
	CodeInternal string      `json:"codeInternal,omitempty"`
	Year         int         `json:"year,omitempty"`
	CreatedAt    *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time  `json:"updatedAt,omitempty"`
}

type PropertyListResponse struct {
	Properties []PropertyDTO      `json:"properties"`
	Pagination PaginationResponse `json:"pagination"`
}

func toPropertyDTO(p domain.Property) PropertyDTO {
	dto := PropertyDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        PriceDTO{Amount: p.Price.Amount, Currency: p.Price.Currency},
		Location:     LocationDTO{Address: p.Location.Address, City: p.Location.City, Country: p.Location.Country},
		PropertyType: string(p.Type),
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		AreaUnit:     string(p.AreaUnit),
		Features:     nonNil(p.Features),
		Images:       nonNil(p.Images),
		Status:       string(p.Status),
		IDOwner:      p.OwnerID,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
	}
	if !p.CreatedAt.IsZero() {
		createdAt := p.CreatedAt
		dto.CreatedAt = &createdAt
	}
	if !p.UpdatedAt.IsZero() {
		updatedAt := p.UpdatedAt
		dto.UpdatedAt = &updatedAt
	}
	return dto
}

// toDomain приводит тип к каноническому и нормализует валюту.
func (d PropertyDTO) toDomain() (domain.Property, map[string][]string) {
	p := domain.Property{
		ID:           d.ID,
		Name:         strings.TrimSpace(d.Name),
		Description:  d.Description,
		Price:        domain.Price{Amount: d.Price.Amount, Currency: strings.ToUpper(strings.TrimSpace(d.Price.Currency))},
		Location:     domain.Location{Address: d.Location.Address, City: d.Location.City, Country: d.Location.Country},
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
	propertyType, err := domain.ParsePropertyType(d.PropertyType)
	if err != nil {
		return p, map[string][]string{"propertyType": {err.Error()}}
	}
	p.Type = propertyType
	if p.Status == "" {
		p.Status = domain.PropertyStatusAvailable
	}
	if fields := p.Validate(); len(fields) > 0 {
		return p, fields
	}
	return p, nil
}

type OwnerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Photo    string `json:"photo,omitempty"`
	Birthday string `json:"birthday"`
}

type OwnerListResponse struct {
	Owners     []OwnerDTO         `json:"owners"`
	Pagination PaginationResponse `json:"pagination"`
}

func toOwnerDTO(o domain.Owner) OwnerDTO {
	dto := OwnerDTO{ID: o.ID, Name: o.Name, Address: o.Address, Photo: o.Photo}
	if !o.Birthday.IsZero() {
		dto.Birthday = o.Birthday.Format(domain.BirthdayLayout)
	}
	return dto
}

func (d OwnerDTO) toDomain() (domain.Owner, map[string][]string) {
	o := domain.Owner{ID: d.ID, Name: strings.TrimSpace(d.Name), Address: strings.TrimSpace(d.Address), Photo: d.Photo}
	birthday, err := domain.ParseBirthday(d.Birthday)
	if err != nil {
		return o, map[string][]string{"birthday": {err.Error()}}
	}
	o.Birthday = birthday
	return o, nil
}

type ImageDTO struct {
	ID         string `json:"id"`
	IDProperty string `json:"idProperty"`
	File       string `json:"file"`
	Enabled    bool   `json:"enabled"`
}

type ImageListResponse struct {
	Images []ImageDTO `json:"images"`
}

func toImageDTO(img domain.PropertyImage) ImageDTO {
	return ImageDTO{ID: img.ID, IDProperty: img.PropertyID, File: img.File, Enabled: img.Enabled}
}

func (d ImageDTO) toDomain() domain.PropertyImage {
	return domain.PropertyImage{ID: d.ID, PropertyID: d.IDProperty, File: strings.TrimSpace(d.File), Enabled: d.Enabled}
}

// TraceDTO хранит dateSale строкой: на входе допускается и дата, и RFC3339.
type TraceDTO struct {
	ID         string  `json:"id"`
	IDProperty string  `json:"idProperty"`
	DateSale   string  `json:"dateSale"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Tax        float64 `json:"tax"`
}

type TraceListResponse struct {
	Traces []TraceDTO `json:"traces"`
}

func toTraceDTO(t domain.PropertyTrace) TraceDTO {
	return TraceDTO{
		ID:         t.ID,
		IDProperty: t.PropertyID,
		DateSale:   t.DateSale.UTC().Format(time.RFC3339),
		Name:       t.Name,
		Value:      t.Value,
		Tax:        t.Tax,
	}
}

func (d TraceDTO) toDomain() (domain.PropertyTrace, map[string][]string) {
	t := domain.PropertyTrace{ID: d.ID, PropertyID: d.IDProperty, Name: strings.TrimSpace(d.Name), Value: d.Value, Tax: d.Tax}
	dateSale, err := parseDateSale(d.DateSale)
	if err != nil {
		return t, map[string][]string{"dateSale": {err.Error()}}
	}
	t.DateSale = dateSale
	return t, nil
}

func parseDateSale(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(domain.BirthdayLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid dateSale %q: expected YYYY-MM-DD or RFC3339", raw)
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
