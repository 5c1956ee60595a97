package converter

import (
	"github.com/findthisfit/go-backend/internal/domain"
	"github.com/findthisfit/go-backend/internal/usecase"
)

// ItemConverter преобразует сущности CatalogItem между domain и моделью PostgreSQL.
type ItemConverter interface {
	ToModel(entity *domain.CatalogItem) *ItemModel
	ToEntity(model *ItemModel) *domain.CatalogItem
}

type itemConverter struct{}

func NewItemConverter() ItemConverter {
	return &itemConverter{}
}

func (c *itemConverter) ToModel(entity *domain.CatalogItem) *ItemModel {
	return &ItemModel{
		ID:             entity.ID,
		ExternalID:     emptyToNil(entity.ExternalID),
		Title:          entity.Title,
		Description:    entity.Description,
		PriceCents:     entity.PriceCents,
		Currency:       entity.Currency,
		Brand:          emptyToNil(entity.Brand),
		Category:       emptyToNil(entity.Category),
		Size:           emptyToNil(entity.Size),
		Condition:      emptyToNil(entity.Condition),
		Platform:       entity.Platform,
		ImageURL:       emptyToNil(entity.ImageURL),
		ItemURL:        emptyToNil(entity.ItemURL),
		SellerUsername: emptyToNil(entity.SellerUsername),
		CreatedAt:      entity.CreatedAt,
	}
}

func (c *itemConverter) ToEntity(model *ItemModel) *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:             model.ID,
		ExternalID:     nilToEmpty(model.ExternalID),
		Title:          model.Title,
		Description:    model.Description,
		PriceCents:     model.PriceCents,
		Currency:       model.Currency,
		Brand:          nilToEmpty(model.Brand),
		Category:       nilToEmpty(model.Category),
		Size:           nilToEmpty(model.Size),
		Condition:      nilToEmpty(model.Condition),
		Platform:       model.Platform,
		ImageURL:       nilToEmpty(model.ImageURL),
		ItemURL:        nilToEmpty(model.ItemURL),
		SellerUsername: nilToEmpty(model.SellerUsername),
		CreatedAt:      model.CreatedAt,
	}
}

// OutboxEventConverter преобразует события outbox между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type outboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter {
	return &outboxEventConverter{}
}

func (c *outboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		ItemID:      entity.ItemID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *outboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		ItemID:      model.ItemID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *outboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	entities := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		entities = append(entities, c.ToEntity(model))
	}

	return entities
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func nilToEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
