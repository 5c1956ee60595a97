package qdrant

import (
	"github.com/findthisfit/go-backend/internal/domain"
	"github.com/qdrant/go-client/qdrant"
)

// ToNeighborItem собирает проекцию позиции каталога из payload точки.
// Отсутствующие поля остаются нулевыми, отсутствующая цена — nil.
func ToNeighborItem(payload map[string]*qdrant.Value) domain.NeighborItem {
	item := domain.NeighborItem{
		ID:          payloadInt(payload, "item_id"),
		Title:       payloadString(payload, "title"),
		Description: payloadString(payload, "description"),
		Currency:    payloadString(payload, "currency"),
		ImageURL:    payloadString(payload, "image_url"),
		RedirectURL: payloadString(payload, "redirect_url"),
		Source:      payloadString(payload, "source"),
		Brand:       payloadString(payload, "brand"),
		Category:    payloadString(payload, "category"),
	}

	if v, ok := payload["price_cents"]; ok {
		price := v.GetIntegerValue()
		item.PriceCents = &price
	}

	return item
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}

	return ""
}

func payloadInt(payload map[string]*qdrant.Value, key string) int64 {
	if v, ok := payload[key]; ok {
		return v.GetIntegerValue()
	}

	return 0
}
