package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// PropertyFilters — фильтры списка объектов. Пустые поля не применяются.
type PropertyFilters struct {
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
	PriceAbove   *float64 // строгая нижняя граница
	PropertyType PropertyType
	Status       PropertyStatus
	OwnerID      string
}

func (f PropertyFilters) IsEmpty() bool {
	return f.Search == "" && f.MinPrice == nil && f.MaxPrice == nil && f.PriceAbove == nil &&
		f.PropertyType == "" && f.Status == "" && f.OwnerID == ""
}

// Values сериализует только заданные поля в параметры запроса.
func (f PropertyFilters) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(f.Search); s != "" {
		v.Set("search", s)
	}
	if f.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.PriceAbove != nil {
		v.Set("priceAbove", strconv.FormatFloat(*f.PriceAbove, 'f', -1, 64))
	}
	if f.PropertyType != "" {
		v.Set("propertyType", string(f.PropertyType))
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.OwnerID != "" {
		v.Set("idOwner", f.OwnerID)
	}
	return v
}

// Signature — каноническая строка фильтров. Одинаковые фильтры дают одну строку.
func (f PropertyFilters) Signature() string {
	return f.Values().Encode()
}

// Matches проверяет объект на соответствие фильтрам.
func (f PropertyFilters) Matches(p Property) bool {
	if f.MinPrice != nil && p.Price.Amount < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price.Amount > *f.MaxPrice {
		return false
	}
	if f.PriceAbove != nil && p.Price.Amount <= *f.PriceAbove {
		return false
	}
	if f.PropertyType != "" && p.Type != f.PropertyType {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.OwnerID != "" && p.OwnerID != f.OwnerID {
		return false
	}
	return MatchesSearch(f.Search, p.Name, p.Description, p.Location.Address, p.Location.City)
}

// MatchesSearch ищет подстроку без учета регистра хотя бы в одном из полей.
func MatchesSearch(search string, fields ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// OwnerFilters — фильтр списка владельцев.
type OwnerFilters struct {
	Search string
}

func (f OwnerFilters) Matches(o Owner) bool {
	return MatchesSearch(f.Search, o.Name, o.Address)
}
