package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDishInventoryQuantityDecoding(t *testing.T) {
	cases := map[string]float64{
		`{"id":"di1","quantity":2.5}`:   2.5,
		`{"id":"di1","quantity":"3"}`:   3,
		`{"id":"di1","quantity":"abc"}`: 1,
		`{"id":"di1","quantity":null}`:  1,
		`{"id":"di1","quantity":-4}`:    1,
		`{"id":"di1","quantity":{}}`:    1,
		`{"id":"di1"}`:                  1,
	}
	for payload, want := range cases {
		var link DishInventory
		require.NoError(t, json.Unmarshal([]byte(payload), &link), payload)
		assert.Equal(t, "di1", link.ID, payload)
		assert.Equal(t, want, link.Quantity, payload)
	}
}

func TestDishInventoryKeepsOtherFields(t *testing.T) {
	var links []DishInventory
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"di1","dishId":"d1","inventoryItemId":"i1","quantity":"x","defaultSelected":true},
		{"id":"di2","dishId":"d1","inventoryItemId":"i2","quantity":2}
	]`), &links))
	require.Len(t, links, 2)
	assert.Equal(t, "d1", links[0].DishID)
	assert.Equal(t, "i1", links[0].InventoryItemID)
	assert.True(t, links[0].DefaultSelected)
	assert.Equal(t, 1.0, links[0].Quantity)
	assert.Equal(t, 2.0, links[1].Quantity)
}
