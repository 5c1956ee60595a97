package qdrant

import (
	"context"

	"github.com/findthisfit/go-backend/internal/cfg"
	"github.com/findthisfit/go-backend/internal/domain"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// CatalogRepo репозиторий для работы с векторами каталога в Qdrant.
type CatalogRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewCatalogRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *CatalogRepo {
	return &CatalogRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет векторы позиций в коллекции Qdrant.
func (q *CatalogRepo) Upsert(ctx context.Context, vectors []domain.Embedding) error {
	reqVectors := make([]*qdrant.PointStruct, 0, len(vectors))
	for _, vector := range vectors {
		reqVectors = append(reqVectors, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(vector.ID),
			Vectors: qdrant.NewVectors(vector.Vector...),
			Payload: qdrant.NewValueMap(vector.Payload),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.CollectionName,
		Points:         reqVectors,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SearchNearest возвращает не более limit ближайших соседей вектора
// запроса по возрастанию косинусной дистанции. Коллекция косинусная,
// поэтому дистанция восстанавливается как 1 - score.
func (q *CatalogRepo) SearchNearest(ctx context.Context, vector []float32, limit int) ([]domain.Neighbor, error) {
	if len(vector) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrEmptyVector)
	}

	reqLimit := uint64(limit)
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.cfg.CollectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &reqLimit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.Wrap(err.Error(), e.ErrIndexUnavailable))
	}

	neighbors := make([]domain.Neighbor, 0, len(points))
	for _, point := range points {
		neighbors = append(neighbors, domain.Neighbor{
			Item:     ToNeighborItem(point.Payload),
			Distance: 1 - float64(point.Score),
		})
	}

	return neighbors, nil
}
