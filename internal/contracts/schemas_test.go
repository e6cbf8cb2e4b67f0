package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorAcceptsValidBodies(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(PropertySchema, []byte(`{"name":"Loft","price":{"amount":1200,"currency":"USD"},"propertyType":"apartment"}`)))
	assert.NoError(t, v.Validate(OwnerSchema, []byte(`{"name":"Ann","address":"Main 1","birthday":"1990-05-01"}`)))
	assert.NoError(t, v.Validate(ImageSchema, []byte(`{"file":"https://img/1.jpg","enabled":true}`)))
	assert.NoError(t, v.Validate(TraceSchema, []byte(`{"dateSale":"2024-01-01","name":"Sale","value":100,"tax":5}`)))
}

func TestValidatorReportsFieldViolations(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Validate(PropertySchema, []byte(`{"name":"Loft","price":{"amount":"cheap"},"status":"lost"}`))
	require.Error(t, err)

	var bodyErr *BodyError
	require.ErrorAs(t, err, &bodyErr)
	assert.Equal(t, "Invalid request body", bodyErr.Message)
	assert.Contains(t, bodyErr.Fields, "price.amount")
	assert.Contains(t, bodyErr.Fields, "status")
}

func TestValidatorRejectsMalformedJSON(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Validate(OwnerSchema, []byte(`{"name":`))
	var bodyErr *BodyError
	require.ErrorAs(t, err, &bodyErr)
	assert.Empty(t, bodyErr.Fields)
}

func TestValidatorUnknownSchema(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	assert.Error(t, v.Validate("agency", []byte(`{}`)))
}
