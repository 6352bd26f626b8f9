package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectIdentifier_String(t *testing.T) {
	assert.Equal(t, "default_catalog.shop.orders",
		ObjectIdentifier{Catalog: "default_catalog", Database: "shop", Object: "orders"}.String())
	assert.Equal(t, "orders", ObjectIdentifier{Object: "orders"}.String())
}

func TestPhysicalSchema_PrimaryKeyColumns(t *testing.T) {
	tests := []struct {
		name   string
		schema PhysicalSchema
		want   []string
	}{
		{name: "no key", schema: PhysicalSchema{}, want: nil},
		{name: "empty key", schema: PhysicalSchema{PrimaryKey: &PrimaryKey{}}, want: []string{}},
		{name: "composite key", schema: PhysicalSchema{PrimaryKey: &PrimaryKey{Columns: []string{"id", "ts"}}}, want: []string{"id", "ts"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schema.PrimaryKeyColumns())
		})
	}
}

func TestPhysicalSchema_CloneDoesNotAlias(t *testing.T) {
	orig := PhysicalSchema{
		Columns:    []Column{{Name: "id", Type: "BIGINT"}, {Name: "ts", Type: "TIMESTAMP"}},
		PrimaryKey: &PrimaryKey{Name: "pk", Columns: []string{"id"}},
	}
	clone := orig.Clone()

	orig.Columns[0].Name = "changed"
	orig.PrimaryKey.Columns[0] = "changed"

	assert.Equal(t, []string{"id", "ts"}, clone.ColumnNames())
	assert.Equal(t, []string{"id"}, clone.PrimaryKeyColumns())
	assert.Equal(t, "pk", clone.PrimaryKey.Name)
}

func TestParseConnectorType(t *testing.T) {
	ct, err := ParseConnectorType(" Source ")
	require.NoError(t, err)
	assert.Equal(t, ConnectorTypeSource, ct)

	ct, err = ParseConnectorType("sink")
	require.NoError(t, err)
	assert.Equal(t, ConnectorTypeSink, ct)

	_, err = ParseConnectorType("destination")
	assert.Error(t, err)
}
