// Package fixtures содержит начальные данные mock API и сидера.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

//go:embed data/*.json
var dataFS embed.FS

type ownerRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Photo    string `json:"photo"`
	Birthday string `json:"birthday"`
}

type propertyRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"price"`
	Location struct {
		Address string `json:"address"`
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"location"`
	PropertyType string    `json:"propertyType"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Area         float64   `json:"area"`
	AreaUnit     string    `json:"areaUnit"`
	Features     []string  `json:"features"`
	Images       []string  `json:"images"`
	Status       string    `json:"status"`
	IDOwner      string    `json:"idOwner"`
	CodeInternal string    `json:"codeInternal"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type imageRecord struct {
	ID         string `json:"id"`
	IDProperty string `json:"idProperty"`
	File       string `json:"file"`
	Enabled    bool   `json:"enabled"`
}

type traceRecord struct {
	ID         string    `json:"id"`
	IDProperty string    `json:"idProperty"`
	DateSale   time.Time `json:"dateSale"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Tax        float64   `json:"tax"`
}

// Load разбирает встроенные JSON-файлы в набор доменных записей.
// Устаревшие типы объектов (villa, penthouse и т.п.) приводятся к каноническим.
func Load() (port.Dataset, error) {
	var data port.Dataset

	var owners []ownerRecord
	if err := readJSON("owners.json", &owners); err != nil {
		return data, err
	}
	for _, o := range owners {
		birthday, err := domain.ParseBirthday(o.Birthday)
		if err != nil {
			return data, fmt.Errorf("fixtures: owner %s: %w", o.ID, err)
		}
		data.Owners = append(data.Owners, domain.Owner{
			ID: o.ID, Name: o.Name, Address: o.Address, Photo: o.Photo, Birthday: birthday,
		})
	}

	var properties []propertyRecord
	if err := readJSON("properties.json", &properties); err != nil {
		return data, err
	}
	for _, p := range properties {
		propertyType, err := domain.ParsePropertyType(p.PropertyType)
		if err != nil {
			return data, fmt.Errorf("fixtures: property %s: %w", p.ID, err)
		}
		data.Properties = append(data.Properties, domain.Property{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Price:        domain.Price{Amount: p.Price.Amount, Currency: p.Price.Currency},
			Location:     domain.Location{Address: p.Location.Address, City: p.Location.City, Country: p.Location.Country},
			Type:         propertyType,
			Bedrooms:     p.Bedrooms,
			Bathrooms:    p.Bathrooms,
			Area:         p.Area,
			AreaUnit:     domain.AreaUnit(p.AreaUnit),
			Features:     p.Features,
			Images:       p.Images,
			Status:       domain.PropertyStatus(p.Status),
			OwnerID:      p.IDOwner,
			CodeInternal: p.CodeInternal,
			Year:         p.Year,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		})
	}

	var images []imageRecord
	if err := readJSON("images.json", &images); err != nil {
		return data, err
	}
	for _, img := range images {
		data.Images = append(data.Images, domain.PropertyImage{
			ID: img.ID, PropertyID: img.IDProperty, File: img.File, Enabled: img.Enabled,
		})
	}

	var traces []traceRecord
	if err := readJSON("traces.json", &traces); err != nil {
		return data, err
	}
	for _, t := range traces {
		data.Traces = append(data.Traces, domain.PropertyTrace{
			ID: t.ID, PropertyID: t.IDProperty, DateSale: t.DateSale, Name: t.Name, Value: t.Value, Tax: t.Tax,
		})
	}

	return data, nil
}

func readJSON(name string, target interface{}) error {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("fixtures: failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("fixtures: failed to decode %s: %w", name, err)
	}
	return nil
}
