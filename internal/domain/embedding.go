package domain

import "time"

// Payload описывает дополнительную информацию вектора
type Payload map[string]any

// Embedding представляет эмбеддинг одной позиции каталога
type Embedding struct {
	ID      string
	Vector  []float32
	Payload Payload
}

func NewEmbedding(id string, vector []float32, payload Payload) *Embedding {
	return &Embedding{
		ID:      id,
		Vector:  vector,
		Payload: payload,
	}
}

// NewItemPayload собирает payload вектора каталога. Проекция полей
// должна оставаться согласованной с NeighborItem.
func NewItemPayload(item *CatalogItem, modelVersion string) Payload {
	p := Payload{
		"item_id":       item.ID,
		"title":         item.Title,
		"description":   item.Description,
		"currency":      item.Currency,
		"brand":         item.Brand,
		"category":      item.Category,
		"image_url":     item.ImageURL,
		"redirect_url":  item.ItemURL,
		"source":        item.Platform,
		"created_at":    time.Now().UTC().UnixNano(),
		"model_version": modelVersion,
	}
	if item.PriceCents != nil {
		p["price_cents"] = *item.PriceCents
	}

	return p
}
