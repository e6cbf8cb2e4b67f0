package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"real-estate-system/storefront/internal/core/domain"
)

func TestPropertyFilterOnlySetFields(t *testing.T) {
	assert.Empty(t, propertyFilter(domain.PropertyFilters{}))

	minPrice := 100.0
	filter := propertyFilter(domain.PropertyFilters{
		Search:       " a.b ",
		MinPrice:     &minPrice,
		PropertyType: domain.PropertyTypeHouse,
		OwnerID:      "owner-1",
	})

	assert.Equal(t, bson.M{"$gte": 100.0}, filter["price.amount"])
	assert.Equal(t, "house", filter["propertyType"])
	assert.Equal(t, "owner-1", filter["idOwner"])
	assert.NotContains(t, filter, "status")

	or, ok := filter["$or"].(bson.A)
	if assert.True(t, ok) {
		assert.Len(t, or, 4)
		assert.Equal(t, bson.M{"name": bson.M{"$regex": `a\.b`, "$options": "i"}}, or[0])
	}
}

func TestPropertyFilterPriceAboveIsStrict(t *testing.T) {
	minPrice, threshold := 500_000.0, 1_000_000.0
	filter := propertyFilter(domain.PropertyFilters{MinPrice: &minPrice, PriceAbove: &threshold})

	assert.Equal(t, bson.M{"$gte": 500_000.0, "$gt": 1_000_000.0}, filter["price.amount"])
}

func TestTraceSortDefaults(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "dateSale", Value: -1}, {Key: "_id", Value: 1}}, traceSort(domain.TraceQuery{}))
	assert.Equal(t, bson.D{{Key: "value", Value: 1}, {Key: "_id", Value: 1}},
		traceSort(domain.TraceQuery{SortBy: domain.TraceSortByValue, Order: domain.SortAsc}))
}

func TestPropertyDocumentNormalizesLegacyType(t *testing.T) {
	doc := toPropertyDocument(domain.Property{ID: "p1", Name: "Villa", Type: domain.PropertyTypeHouse, CreatedAt: time.Unix(0, 0)})
	doc.PropertyType = "villa"

	p := doc.toDomain()
	assert.Equal(t, domain.PropertyTypeHouse, p.Type)
	assert.Equal(t, "p1", p.ID)
}
