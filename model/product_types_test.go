package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDecodesBackendShapes(t *testing.T) {
	raw := `[
		{"_id":{"$oid":"65a1"},"name":"Blanket","category":"blankets","stock":3,"imported":true,
		 "lastUpdated":"Tue, 15 Oct 2024 10:00:00 GMT","dimensions":{"length":"1000","lengthUnit":"mm"}},
		{"_id":"65a2","name":"Ink","category":"ink","stock":0,"lastUpdated":"N/A","dimensions":null},
		{"_id":"65a3","name":"Film","category":"film","stock":1,"lastUpdated":"2024-12-25T08:00:00Z"}
	]`
	var products []Product
	require.NoError(t, json.Unmarshal([]byte(raw), &products))
	require.Len(t, products, 3)

	assert.Equal(t, ObjectID("65a1"), products[0].ID)
	assert.Equal(t, time.Date(2024, 10, 15, 10, 0, 0, 0, time.UTC), products[0].LastUpdated.UTC())
	length, ok := products[0].Dimensions.Float("length")
	assert.True(t, ok)
	assert.Equal(t, 1000.0, length)

	assert.Equal(t, ObjectID("65a2"), products[1].ID)
	assert.True(t, products[1].LastUpdated.IsZero())
	assert.Nil(t, products[1].Dimensions)

	assert.Equal(t, 2024, products[2].LastUpdated.Year())
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestTimestampMarshal(t *testing.T) {
	out, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = json.Marshal(Timestamp{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T03:04:05Z"`, string(out))
}

func TestDimensionsPresence(t *testing.T) {
	var nilBag Dimensions
	_, ok := nilBag.Float("length")
	assert.False(t, ok)
	assert.Equal(t, "", nilBag.String("rollNumber"))
	assert.Empty(t, nilBag.Keys())

	d := Dimensions{"length": 0.0, "width": 12.5, "rollNumber": "  ", "stockType": "roll", "thickness": nil}
	assert.False(t, d.Has("length"))
	assert.True(t, d.Has("width"))
	assert.False(t, d.Has("rollNumber"))
	assert.True(t, d.Has("stockType"))
	assert.False(t, d.Has("thickness"))
	assert.Equal(t, []string{"stockType", "width"}, d.Keys())
	for _, k := range d.Keys() {
		assert.True(t, d.Has(k), k)
	}
}
