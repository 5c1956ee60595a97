package converter

import "time"

// ItemModel представляет запись таблицы fashion_items в PostgreSQL.
type ItemModel struct {
	ID             int64     `db:"id"`
	ExternalID     *string   `db:"external_id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	PriceCents     *int64    `db:"price_cents"`
	Currency       string    `db:"currency"`
	Brand          *string   `db:"brand"`
	Category       *string   `db:"category"`
	Size           *string   `db:"size"`
	Condition      *string   `db:"condition"`
	Platform       string    `db:"platform"`
	ImageURL       *string   `db:"image_url"`
	ItemURL        *string   `db:"item_url"`
	SellerUsername *string   `db:"seller_username"`
	CreatedAt      time.Time `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ItemID      int64      `db:"item_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
