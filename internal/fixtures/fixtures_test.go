package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"real-estate-system/storefront/internal/core/domain"
)

func TestLoadIsConsistent(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	require.NotEmpty(t, data.Owners)
	require.NotEmpty(t, data.Properties)

	owners := make(map[string]bool)
	for _, o := range data.Owners {
		owners[o.ID] = true
		assert.False(t, o.Birthday.IsZero(), o.ID)
	}

	properties := make(map[string]bool)
	for _, p := range data.Properties {
		assert.False(t, properties[p.ID], "duplicate id %s", p.ID)
		properties[p.ID] = true
		assert.True(t, owners[p.OwnerID], "property %s references unknown owner", p.ID)
		assert.Empty(t, p.Validate(), p.ID)
	}

	for _, img := range data.Images {
		assert.True(t, properties[img.PropertyID], img.ID)
	}
	for _, tr := range data.Traces {
		assert.True(t, properties[tr.PropertyID], tr.ID)
	}
}

func TestLoadNormalizesLegacyTypes(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	byID := make(map[string]domain.Property)
	for _, p := range data.Properties {
		byID[p.ID] = p
	}
	assert.Equal(t, domain.PropertyTypeHouse, byID["prop-1"].Type)
	assert.Equal(t, domain.PropertyTypeApartment, byID["prop-4"].Type)
	assert.Equal(t, domain.PropertyTypeLand, byID["prop-7"].Type)
	assert.Equal(t, domain.PropertyTypeCommercial, byID["prop-9"].Type)
}
