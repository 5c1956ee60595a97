package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighborPrice(t *testing.T) {
	cents := int64(4599)
	n := Neighbor{Item: NeighborItem{PriceCents: &cents}}

	got := n.Price()

	require.NotNil(t, got)
	assert.InDelta(t, 45.99, *got, 1e-9)
}

func TestNeighborPriceAbsent(t *testing.T) {
	n := Neighbor{}

	assert.Nil(t, n.Price())
}

func TestNewItemPayload(t *testing.T) {
	cents := int64(5000)
	item := NewCatalogItem("Nike Hoodie", "cotton fleece", &cents, "grailed")
	item.ID = 42
	item.Brand = "Nike"
	item.Category = "hoodie"
	item.ImageURL = "items/nike-hoodie/abc.jpg"
	item.ItemURL = "https://shop.example/42"

	p := NewItemPayload(item, "clip-vit-b32")

	assert.Equal(t, int64(42), p["item_id"])
	assert.Equal(t, "Nike Hoodie", p["title"])
	assert.Equal(t, "usd", p["currency"])
	assert.Equal(t, int64(5000), p["price_cents"])
	assert.Equal(t, "grailed", p["source"])
	assert.Equal(t, "https://shop.example/42", p["redirect_url"])
	assert.Equal(t, "clip-vit-b32", p["model_version"])
	assert.Contains(t, p, "created_at")
}

func TestNewItemPayloadOmitsAbsentPrice(t *testing.T) {
	item := NewCatalogItem("Plain Tee", "", nil, "")

	p := NewItemPayload(item, "clip-vit-b32")

	assert.NotContains(t, p, "price_cents")
}
