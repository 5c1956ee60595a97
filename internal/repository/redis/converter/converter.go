package converter

import (
	"github.com/findthisfit/go-backend/internal/usecase"
)

// ItemInfoConverter преобразует информацию о позициях между usecase и
// моделью Redis.
type ItemInfoConverter interface {
	ToRedisModel(entity *usecase.ItemInfo) *ItemInfoRedisModel
	ToUseCase(model *ItemInfoRedisModel) *usecase.ItemInfo
	ToArrRedisModel(entities []usecase.ItemInfo) []ItemInfoRedisModel
	ToArrUseCase(models []ItemInfoRedisModel) []usecase.ItemInfo
}

type itemInfoConverter struct{}

func NewItemInfoConverter() ItemInfoConverter {
	return &itemInfoConverter{}
}

func (c *itemInfoConverter) ToRedisModel(entity *usecase.ItemInfo) *ItemInfoRedisModel {
	return &ItemInfoRedisModel{
		ID:         entity.ID,
		Title:      entity.Title,
		Category:   entity.Category,
		Brand:      entity.Brand,
		PriceCents: entity.PriceCents,
		ImageURL:   entity.ImageURL,
	}
}

func (c *itemInfoConverter) ToUseCase(model *ItemInfoRedisModel) *usecase.ItemInfo {
	return &usecase.ItemInfo{
		ID:         model.ID,
		Title:      model.Title,
		Category:   model.Category,
		Brand:      model.Brand,
		PriceCents: model.PriceCents,
		ImageURL:   model.ImageURL,
	}
}

func (c *itemInfoConverter) ToArrRedisModel(entities []usecase.ItemInfo) []ItemInfoRedisModel {
	models := make([]ItemInfoRedisModel, 0, len(entities))
	for i := range entities {
		models = append(models, *c.ToRedisModel(&entities[i]))
	}

	return models
}

func (c *itemInfoConverter) ToArrUseCase(models []ItemInfoRedisModel) []usecase.ItemInfo {
	entities := make([]usecase.ItemInfo, 0, len(models))
	for i := range models {
		entities = append(entities, *c.ToUseCase(&models[i]))
	}

	return entities
}
