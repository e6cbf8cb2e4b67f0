package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

// ExpensivePriceThreshold — граница, выше которой объект считается дорогим.
const ExpensivePriceThreshold = 1_000_000

type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeLand       PropertyType = "land"
)

// legacyPropertyTypes — варианты из старых моков, которые сводятся к основному набору.
var legacyPropertyTypes = map[string]PropertyType{
	"villa":     PropertyTypeHouse,
	"townhouse": PropertyTypeHouse,
	"penthouse": PropertyTypeApartment,
	"studio":    PropertyTypeApartment,
	"office":    PropertyTypeCommercial,
	"plot":      PropertyTypeLand,
}

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeCommercial, PropertyTypeLand:
		return true
	}
	return false
}

// ParsePropertyType принимает основной или устаревший тип без учета регистра.
func ParsePropertyType(raw string) (PropertyType, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if t := PropertyType(normalized); t.Valid() {
		return t, nil
	}
	if t, ok := legacyPropertyTypes[normalized]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPropertyType, raw)
}

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusRented    PropertyStatus = "rented"
)

func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusSold, PropertyStatusRented:
		return true
	}
	return false
}

type AreaUnit string

const (
	AreaUnitSquareMeters AreaUnit = "m2"
	AreaUnitSquareFeet   AreaUnit = "sqft"
)

func (u AreaUnit) Valid() bool {
	return u == AreaUnitSquareMeters || u == AreaUnitSquareFeet
}

type Price struct {
	Amount   float64
	Currency string
}

type Location struct {
	Address string
	City    string
	Country string
}

// Property — объект недвижимости в витрине.
type Property struct {
	ID           string
	Name         string
	Description  string
	Price        Price
	Location     Location
	Type         PropertyType
	Bedrooms     int
	Bathrooms    int
	Area         float64
	AreaUnit     AreaUnit
	Features     []string
	Images       []string
	Status       PropertyStatus
	OwnerID      string
	CodeInternal string
	Year         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Property) IsExpensive() bool {
	return p.Price.Amount > ExpensivePriceThreshold
}

func (p Property) IsAvailable() bool {
	return p.Status == PropertyStatusAvailable
}

// Clone возвращает копию без общих слайсов.
func (p Property) Clone() Property {
	c := p
	if p.Features != nil {
		c.Features = append([]string(nil), p.Features...)
	}
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	return c
}

// Validate проверяет инварианты объекта и возвращает нарушения по полям.
// nil означает, что объект корректен.
func (p Property) Validate() map[string][]string {
	violations := make(map[string][]string)
	add := func(field, msg string) {
		violations[field] = append(violations[field], msg)
	}

	if strings.TrimSpace(p.Name) == "" {
		add("name", "is required")
	}
	if p.Price.Amount < 0 {
		add("price.amount", "must be greater than or equal to 0")
	}
	if err := ValidateCurrency(p.Price.Currency); err != nil {
		add("price.currency", err.Error())
	}
	if !p.Type.Valid() {
		add("propertyType", fmt.Sprintf("unknown property type %q", p.Type))
	}
	if p.Status != "" && !p.Status.Valid() {
		add("status", fmt.Sprintf("unknown status %q", p.Status))
	}
	if p.AreaUnit != "" && !p.AreaUnit.Valid() {
		add("areaUnit", fmt.Sprintf("unknown area unit %q", p.AreaUnit))
	}
	if p.Bedrooms < 0 {
		add("bedrooms", "must be greater than or equal to 0")
	}
	if p.Bathrooms < 0 {
		add("bathrooms", "must be greater than or equal to 0")
	}
	if p.Area < 0 {
		add("area", "must be greater than or equal to 0")
	}

	if len(violations) == 0 {
		return nil
	}
	return violations
}

// ValidateCurrency проверяет трехбуквенный код ISO 4217.
func ValidateCurrency(code string) error {
	if len(code) != 3 || strings.ToUpper(code) != code {
		return fmt.Errorf("must be a 3-letter uppercase ISO 4217 code")
	}
	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}
