package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/findthisfit/go-backend/internal/domain"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/findthisfit/go-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ItemUseCase реализует бизнес-логику управления позициями каталога.
type ItemUseCase struct {
	itemRepo      ItemRepository
	dbPool        transaction.Transactional
	embedder      EmbeddingProvider
	imagesInfra   ImagesInfra
	embeddingRepo EmbeddingRepository
	outboxRepo    OutboxRepository
	cacheRepo     CacheRepository
	logger        logger.Logger
}

func NewItemUC(
	itemRepo ItemRepository,
	dbPool transaction.Transactional,
	embedder EmbeddingProvider,
	imagesInfra ImagesInfra,
	embeddingRepo EmbeddingRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:      itemRepo,
		dbPool:        dbPool,
		embedder:      embedder,
		imagesInfra:   imagesInfra,
		embeddingRepo: embeddingRepo,
		outboxRepo:    outboxRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
	}
}

// AddItem обрабатывает добавление новой позиции: изображение, запись в
// каталог, вектор в индексе и событие для фоновых потребителей.
func (u *ItemUseCase) AddItem(ctx context.Context, req *AddItemReq) (*AddItemRes, error) {
	const op = "ItemUseCase.AddItem"

	// Валидация данных
	var err error
	err = u.validateItem(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		imageKey string
		uploaded bool
	)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, u.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции и очистка загруженного изображения
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded {
				u.logger.Warnf(
					"Cleaning up orphaned image after transaction failure. item_title: %s, error: %v",
					req.Title,
					e.Wrap(op, err),
				)

				u.imagesInfra.CleanupImages([]string{imageKey})
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Векторизация позиции по изображению и тексту объявления
	embedRes, err := u.getVector(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Сохранение изображения в MinIO
	imageKey, err = u.imagesInfra.UploadImage(ctx, NewUploadImageReq(req.Title, req.Image))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	uploaded = true

	// Запись позиции в каталог
	item, err := u.insertItem(ctx, req, imageKey)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Сохранение вектора с метаданными позиции (S3 key, Item ID, Model Version)
	err = u.upsertEmbedding(ctx, item, embedRes)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Событие о новой позиции фиксируется в той же транзакции (outbox)
	err = u.createOutboxEvent(ctx, item, imageKey, embedRes.ModelVersion)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Коммит изменений в бд
	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных позиции
	if cacheErr := u.cacheRepo.DeleteItems(ctx, []int64{item.ID}); cacheErr != nil {
		u.logger.Warnf("Failed to delete items from cache: %v", e.Wrap(op, cacheErr))
	}

	return &AddItemRes{ItemID: item.ID}, nil
}

// GetItemsInfo возвращает информацию о позициях по их идентификаторам.
func (u *ItemUseCase) GetItemsInfo(ctx context.Context, req *GetItemsReq) (*GetItemsRes, error) {
	const op = "ItemUseCase.GetItemsInfo"

	// Валидация
	if len(req.IDs) == 0 {
		return nil, e.Wrap(op, e.ErrNoItems)
	}

	// Поиск позиций в кэше
	cacheItemsMap, err := u.cacheRepo.GetItems(ctx, req.IDs)
	var (
		nonCacheable []int64
		cacheable    []ItemInfo
	)
	if err != nil {
		for _, itemID := range req.IDs {
			nonCacheable = append(nonCacheable, itemID)
		}
	} else {
		for _, itemID := range req.IDs {
			if item, ok := cacheItemsMap[itemID]; ok {
				cacheable = append(cacheable, item)
			} else {
				nonCacheable = append(nonCacheable, itemID)
			}
		}
	}

	// Получение позиций из БД
	var itemsInfoFromDB []ItemInfo
	if len(nonCacheable) > 0 {
		itemsInfoFromDB, err = u.itemRepo.GetItemsInfo(ctx, nonCacheable)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		// Фоновое добавление позиций в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := u.cacheRepo.SetItems(bgCtx, itemsInfoFromDB); err != nil {
				u.logger.Warnf("Failed to cache items in background: %v", e.Wrap(op, err))
			}
		}()
	}

	dbItemsMap := make(map[int64]ItemInfo, len(itemsInfoFromDB))
	for _, itemInfo := range itemsInfoFromDB {
		dbItemsMap[itemInfo.ID] = itemInfo
	}

	// Формирование результата
	result := make([]ItemInfo, 0, len(req.IDs))
	notFoundItems := make([]int64, 0)
	for _, id := range req.IDs {
		if it, ok := cacheItemsMap[id]; ok {
			result = append(result, it)
		} else if it, ok := dbItemsMap[id]; ok {
			result = append(result, it)
		} else {
			notFoundItems = append(notFoundItems, id)
		}
	}

	return NewGetItemsRes(result, notFoundItems), nil
}

// getVector запрашивает векторное представление позиции у провайдера
// эмбеддингов: изображение плюс текст объявления.
func (u *ItemUseCase) getVector(ctx context.Context, req *AddItemReq) (*EmbedRes, error) {
	text := req.Title
	if req.Description != "" {
		text = req.Title + ". " + req.Description
	}

	embedRes, err := u.embedder.Embed(ctx, req.Image.Data, text)
	if err != nil {
		return nil, err
	}

	if len(embedRes.Vector) == 0 {
		return nil, e.ErrEmptyVector
	}

	return embedRes, nil
}

// insertItem записывает позицию каталога в БД.
func (u *ItemUseCase) insertItem(ctx context.Context, req *AddItemReq, imageKey string) (*domain.CatalogItem, error) {
	item := domain.NewCatalogItem(req.Title, req.Description, req.PriceCents, req.Source)
	item.Brand = req.Brand
	item.Category = req.Category
	item.Size = req.Size
	item.Condition = req.Condition
	item.SellerUsername = req.OwnerID
	item.ImageURL = imageKey

	return u.itemRepo.Insert(ctx, item)
}

// createOutboxEvent записывает событие о новой позиции в outbox.
func (u *ItemUseCase) createOutboxEvent(ctx context.Context, item *domain.CatalogItem, imageKey, modelVersion string) error {
	payload, err := json.Marshal(&ItemAddedEvent{
		ItemID:       item.ID,
		Title:        item.Title,
		Platform:     item.Platform,
		ImageKey:     imageKey,
		ModelVersion: modelVersion,
	})
	if err != nil {
		return err
	}

	_, err = u.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), ItemAddedEventType, item.ID, payload))
	return err
}

// upsertEmbedding сохраняет вектор позиции в Qdrant с метаданными.
func (u *ItemUseCase) upsertEmbedding(ctx context.Context, item *domain.CatalogItem, embedRes *EmbedRes) error {
	payload := domain.NewItemPayload(item, embedRes.ModelVersion)
	embedding := domain.NewEmbedding(uuid.NewString(), embedRes.Vector, payload)

	return u.embeddingRepo.Upsert(ctx, []domain.Embedding{*embedding})
}

// validateItem проверяет корректность входных данных запроса на добавление позиции.
func (u *ItemUseCase) validateItem(req *AddItemReq) error {
	if strings.TrimSpace(req.Title) == "" {
		return e.ErrTitleRequired
	}

	if len(req.Image.Data) == 0 {
		return e.ErrImageRequired
	}

	if req.PriceCents != nil && *req.PriceCents < 0 {
		return e.ErrInvalidPrice
	}

	return nil
}
