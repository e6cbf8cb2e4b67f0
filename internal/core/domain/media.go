package domain

import (
	"sort"
	"time"
)

// PropertyImage — изображение, привязанное к объекту.
type PropertyImage struct {
	ID         string
	PropertyID string
	File       string
	Enabled    bool
}

// PropertyTrace — запись истории продаж объекта.
type PropertyTrace struct {
	ID         string
	PropertyID string
	DateSale   time.Time
	Name       string
	Value      float64
	Tax        float64
}

type TraceSortField string

const (
	TraceSortByDateSale TraceSortField = "dateSale"
	TraceSortByValue    TraceSortField = "value"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TraceQuery — параметры сортировки истории продаж.
type TraceQuery struct {
	SortBy TraceSortField
	Order  SortOrder
}

// WithDefaults подставляет dateSale/desc вместо пустых или неизвестных значений.
func (q TraceQuery) WithDefaults() TraceQuery {
	if q.SortBy != TraceSortByDateSale && q.SortBy != TraceSortByValue {
		q.SortBy = TraceSortByDateSale
	}
	if q.Order != SortAsc && q.Order != SortDesc {
		q.Order = SortDesc
	}
	return q
}

// SortTraces сортирует записи на месте. Сортировка стабильная, при равенстве
// ключа сохраняется исходный порядок.
func SortTraces(traces []PropertyTrace, q TraceQuery) {
	q = q.WithDefaults()
	less := func(a, b PropertyTrace) bool {
		if q.SortBy == TraceSortByValue {
			return a.Value < b.Value
		}
		return a.DateSale.Before(b.DateSale)
	}
	sort.SliceStable(traces, func(i, j int) bool {
		if q.Order == SortAsc {
			return less(traces[i], traces[j])
		}
		return less(traces[j], traces[i])
	})
}

// ImageFilters — фильтр списка изображений.
type ImageFilters struct {
	EnabledOnly bool
}
