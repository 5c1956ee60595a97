package qdrant

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNeighborItem(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{
		"item_id":      int64(42),
		"title":        "Nike Hoodie",
		"description":  "cotton fleece",
		"currency":     "usd",
		"price_cents":  int64(4599),
		"image_url":    "https://img.example/42.jpg",
		"redirect_url": "https://shop.example/42",
		"source":       "grailed",
		"brand":        "Nike",
		"category":     "hoodie",
	})

	item := ToNeighborItem(payload)

	assert.Equal(t, int64(42), item.ID)
	assert.Equal(t, "Nike Hoodie", item.Title)
	assert.Equal(t, "cotton fleece", item.Description)
	assert.Equal(t, "usd", item.Currency)
	require.NotNil(t, item.PriceCents)
	assert.Equal(t, int64(4599), *item.PriceCents)
	assert.Equal(t, "https://img.example/42.jpg", item.ImageURL)
	assert.Equal(t, "grailed", item.Source)
	assert.Equal(t, "Nike", item.Brand)
	assert.Equal(t, "hoodie", item.Category)
}

func TestToNeighborItemMissingFields(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{
		"item_id": int64(7),
		"title":   "Plain Tee",
	})

	item := ToNeighborItem(payload)

	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, "Plain Tee", item.Title)
	assert.Nil(t, item.PriceCents)
	assert.Empty(t, item.Brand)
	assert.Empty(t, item.Currency)
}
