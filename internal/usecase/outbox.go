package usecase

import (
	"context"
	"time"
)

// OutboxStatus — статус события в таблице outbox_events.
type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

// OutboxEventType — тип события каталога.
type OutboxEventType string

const (
	ItemAddedEventType OutboxEventType = "item_added"
)

// OutboxEvent — запись transactional outbox: событие фиксируется в той
// же транзакции, что и изменение каталога, и доставляется в Kafka
// фоновым воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ItemID      int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, itemID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ItemID:    itemID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

// OutboxRepository — хранилище событий outbox.
type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

// MessageProducer — отправка готовых событий в брокер.
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// WriteRawMessageReq — готовый payload события для отправки в брокер.
type WriteRawMessageReq struct {
	ItemID  int64
	Payload []byte
}

func NewWriteRawMessageReq(itemID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ItemID:  itemID,
		Payload: payload,
	}
}
