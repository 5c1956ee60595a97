package pgdb

import (
	"context"

	"github.com/findthisfit/go-backend/internal/domain"
	"github.com/findthisfit/go-backend/internal/repository/pgdb/converter"
	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/findthisfit/go-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ItemRepo реализует репозиторий позиций каталога поверх PostgreSQL.
type ItemRepo struct {
	pool *pgxpool.Pool
	conv converter.ItemConverter
}

func NewItemRepo(pool *pgxpool.Pool, conv converter.ItemConverter) *ItemRepo {
	return &ItemRepo{
		pool: pool,
		conv: conv,
	}
}

// Insert записывает новую позицию каталога и возвращает её с
// присвоенными идентификатором и временем создания.
func (r *ItemRepo) Insert(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO fashion_items (
			external_id, title, description, price_cents, currency,
			brand, category, size, condition, platform,
			image_url, item_url, seller_username
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING
			id, external_id, title, description, price_cents, currency,
			brand, category, size, condition, platform,
			image_url, item_url, seller_username, created_at
	`

	in := r.conv.ToModel(item)

	var model converter.ItemModel
	err = tx.QueryRow(ctx, query,
		in.ExternalID, in.Title, in.Description, in.PriceCents, in.Currency,
		in.Brand, in.Category, in.Size, in.Condition, in.Platform,
		in.ImageURL, in.ItemURL, in.SellerUsername,
	).Scan(
		&model.ID, &model.ExternalID, &model.Title, &model.Description, &model.PriceCents,
		&model.Currency, &model.Brand, &model.Category, &model.Size, &model.Condition,
		&model.Platform, &model.ImageURL, &model.ItemURL, &model.SellerUsername, &model.CreatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model), nil
}

// GetItemsInfo возвращает информацию о позициях по их идентификаторам.
func (r *ItemRepo) GetItemsInfo(ctx context.Context, ids []int64) ([]usecase.ItemInfo, error) {
	query := `
		SELECT id, title, COALESCE(category, ''), COALESCE(brand, ''), price_cents, COALESCE(image_url, '')
		FROM fashion_items
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ItemInfo, 0)
	for rows.Next() {
		var item usecase.ItemInfo
		if err := rows.Scan(&item.ID, &item.Title, &item.Category, &item.Brand, &item.PriceCents, &item.ImageURL); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, item)
	}

	return result, nil
}
