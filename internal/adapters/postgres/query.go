package postgres

import (
	"fmt"
	"strings"

	"real-estate-system/storefront/internal/core/domain"
)

var propertyColumnList = []string{
	"id", "name", "description", "price_amount", "price_currency", "address", "city", "country",
	"property_type", "bedrooms", "bathrooms", "area", "area_unit", "features", "images", "status", "owner_id",
	"code_internal", "year", "created_at", "updated_at",
}

var propertyColumns = strings.Join(propertyColumnList, ", ")

// whereBuilder собирает условия WHERE с позиционными параметрами.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (b *whereBuilder) add(format string, args ...interface{}) {
	placeholders := make([]interface{}, len(args))
	for i, arg := range args {
		b.args = append(b.args, arg)
		placeholders[i] = fmt.Sprintf("$%d", len(b.args))
	}
	b.conds = append(b.conds, fmt.Sprintf(format, placeholders...))
}

func (b *whereBuilder) sql() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// propertyWhere повторяет семантику domain.PropertyFilters.Matches на SQL.
func propertyWhere(f domain.PropertyFilters) *whereBuilder {
	b := &whereBuilder{}
	if search := strings.TrimSpace(f.Search); search != "" {
		b.add("(name ILIKE %[1]s OR description ILIKE %[1]s OR address ILIKE %[1]s OR city ILIKE %[1]s)", likePattern(search))
	}
	if f.MinPrice != nil {
		b.add("price_amount >= %s", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.add("price_amount <= %s", *f.MaxPrice)
	}
	if f.PriceAbove != nil {
		b.add("price_amount > %s", *f.PriceAbove)
	}
	if f.PropertyType != "" {
		b.add("property_type = %s", string(f.PropertyType))
	}
	if f.Status != "" {
		b.add("status = %s", string(f.Status))
	}
	if f.OwnerID != "" {
		b.add("owner_id = %s", f.OwnerID)
	}
	return b
}

func ownerWhere(f domain.OwnerFilters) *whereBuilder {
	b := &whereBuilder{}
	if search := strings.TrimSpace(f.Search); search != "" {
		b.add("(name ILIKE %[1]s OR address ILIKE %[1]s)", likePattern(search))
	}
	return b
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// traceOrderBy возвращает ORDER BY только из заранее известных колонок.
func traceOrderBy(q domain.TraceQuery) string {
	q = q.WithDefaults()
	column := "date_sale"
	if q.SortBy == domain.TraceSortByValue {
		column = "value"
	}
	direction := "DESC"
	if q.Order == domain.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id ASC", column, direction)
}
