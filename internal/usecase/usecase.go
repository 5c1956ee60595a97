package usecase

import (
	"context"

	"github.com/findthisfit/go-backend/internal/domain"
)

// SearchUC — операции визуального поиска и анализа изображений.
type SearchUC interface {
	SearchByImage(ctx context.Context, req *SearchByImageReq) (*SearchRes, error)
	SearchByText(ctx context.Context, req *SearchByTextReq) (*SearchRes, error)
	SearchCombined(ctx context.Context, req *SearchCombinedReq) (*SearchRes, error)
	AnalyzeImage(ctx context.Context, req *AnalyzeImageReq) (*domain.AnalysisResult, error)
	GenerateDescription(ctx context.Context, req *GenerateDescriptionReq) (*GenerateDescriptionRes, error)
}

// ItemUC — операции каталога: добавление позиций и выдача их данных.
type ItemUC interface {
	AddItem(ctx context.Context, req *AddItemReq) (*AddItemRes, error)
	GetItemsInfo(ctx context.Context, req *GetItemsReq) (*GetItemsRes, error)
}
