package usecase

import (
	"context"

	"github.com/findthisfit/go-backend/internal/domain"
)

// CatalogSearchRepository — контракт векторного индекса: по вектору
// запроса возвращает не более limit соседей по возрастанию дистанции.
// Недоступность индекса — ошибка, а не пустой результат.
type CatalogSearchRepository interface {
	SearchNearest(ctx context.Context, vector []float32, limit int) ([]domain.Neighbor, error)
}

// EmbeddingRepository — запись векторов каталога в индекс.
type EmbeddingRepository interface {
	Upsert(ctx context.Context, vectors []domain.Embedding) error
}

// ItemRepository — реляционное хранилище позиций каталога.
type ItemRepository interface {
	Insert(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error)
	GetItemsInfo(ctx context.Context, ids []int64) ([]ItemInfo, error)
}

// ImageRepository — хранилище изображений (S3).
type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

// CacheRepository — кэш данных позиций каталога.
type CacheRepository interface {
	GetItems(ctx context.Context, ids []int64) (map[int64]ItemInfo, error)
	SetItems(ctx context.Context, items []ItemInfo) error
	DeleteItems(ctx context.Context, ids []int64) error
}
