package domain

import "time"

// CatalogItem описывает позицию каталога модных вещей.
// Цена хранится в центах; nil означает, что цена не указана.
type CatalogItem struct {
	ID             int64
	ExternalID     string
	Title          string
	Description    string
	PriceCents     *int64
	Currency       string
	Brand          string
	Category       string
	Size           string
	Condition      string
	Platform       string
	ImageURL       string
	ItemURL        string
	SellerUsername string
	CreatedAt      time.Time
}

func NewCatalogItem(title, description string, priceCents *int64, platform string) *CatalogItem {
	return &CatalogItem{
		Title:       title,
		Description: description,
		PriceCents:  priceCents,
		Currency:    "usd",
		Platform:    platform,
	}
}
