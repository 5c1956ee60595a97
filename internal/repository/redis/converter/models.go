package converter

// ItemInfoRedisModel представляет закэшированную позицию каталога.
type ItemInfoRedisModel struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Brand      string `json:"brand"`
	PriceCents *int64 `json:"price_cents,omitempty"`
	ImageURL   string `json:"image_url"`
}
