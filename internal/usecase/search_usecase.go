package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/findthisfit/go-backend/internal/analysis"
	"github.com/findthisfit/go-backend/internal/domain"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/findthisfit/go-backend/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	// searchLimit — размер выдачи обычного поиска.
	searchLimit = 20
	// analyzeLimit — k ближайших соседей для вывода атрибутов.
	analyzeLimit = 10

	visionColorConfidence = 0.95
)

// SearchUseCase реализует конвейер поиска и анализа: эмбеддинг →
// векторный индекс → классификатор/резолвер бренда/агрегатор.
// Три режима поиска различаются только способом получения эмбеддинга.
type SearchUseCase struct {
	embedder   EmbeddingProvider
	catalog    CatalogSearchRepository
	classifier *analysis.Classifier
	brands     *analysis.BrandResolver
	aggregator *analysis.Aggregator
	vision     VisionInfra
	logger     logger.Logger
}

func NewSearchUC(
	embedder EmbeddingProvider,
	catalog CatalogSearchRepository,
	classifier *analysis.Classifier,
	brands *analysis.BrandResolver,
	aggregator *analysis.Aggregator,
	vision VisionInfra,
	logger logger.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		embedder:   embedder,
		catalog:    catalog,
		classifier: classifier,
		brands:     brands,
		aggregator: aggregator,
		vision:     vision,
		logger:     logger,
	}
}

// SearchByImage возвращает визуально похожие позиции каталога.
func (s *SearchUseCase) SearchByImage(ctx context.Context, req *SearchByImageReq) (*SearchRes, error) {
	const op = "SearchUseCase.SearchByImage"

	if len(req.ImageBytes) == 0 {
		return nil, e.Wrap(op, e.ErrImageRequired)
	}

	return s.search(ctx, op, req.ImageBytes, "")
}

// SearchByText возвращает позиции, близкие к текстовому описанию.
func (s *SearchUseCase) SearchByText(ctx context.Context, req *SearchByTextReq) (*SearchRes, error) {
	const op = "SearchUseCase.SearchByText"

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, e.Wrap(op, e.ErrEmptyQuery)
	}

	return s.search(ctx, op, nil, query)
}

// SearchCombined объединяет изображение и текст в один мультимодальный
// запрос; обязателен хотя бы один из входов.
func (s *SearchUseCase) SearchCombined(ctx context.Context, req *SearchCombinedReq) (*SearchRes, error) {
	const op = "SearchUseCase.SearchCombined"

	query := strings.TrimSpace(req.Query)
	if len(req.ImageBytes) == 0 && query == "" {
		return nil, e.Wrap(op, e.ErrImageOrTextRequired)
	}

	return s.search(ctx, op, req.ImageBytes, query)
}

// search — общий путь всех режимов: после эмбеддинга конвейер одинаков.
func (s *SearchUseCase) search(ctx context.Context, op string, imageBytes []byte, query string) (*SearchRes, error) {
	embedRes, err := s.embedder.Embed(ctx, imageBytes, query)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	neighbors, err := s.catalog.SearchNearest(ctx, embedRes.Vector, searchLimit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items := make([]FoundItem, 0, len(neighbors))
	for i := range neighbors {
		n := &neighbors[i]
		items = append(items, FoundItem{
			ID:          n.Item.ID,
			Title:       n.Item.Title,
			Description: n.Item.Description,
			Price:       n.Price(),
			ImageURL:    n.Item.ImageURL,
			Distance:    n.Distance,
			RedirectURL: n.Item.RedirectURL,
			Source:      n.Item.Source,
		})
	}

	return NewSearchRes(items), nil
}

// AnalyzeImage выводит атрибуты вещи: zero-shot классификация по
// эмбеддингу плюс агрегация по ближайшим соседям каталога. Чтение
// бренда/цвета vision-моделью — необязательный сигнал, его ошибки
// гасятся локально.
func (s *SearchUseCase) AnalyzeImage(ctx context.Context, req *AnalyzeImageReq) (*domain.AnalysisResult, error) {
	const op = "SearchUseCase.AnalyzeImage"

	if len(req.ImageBytes) == 0 {
		return nil, e.Wrap(op, e.ErrImageRequired)
	}

	var (
		embedRes *EmbedRes
		read     VisionRead
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		embedRes, err = s.embedder.Embed(gCtx, req.ImageBytes, "")
		return err
	})
	g.Go(func() error {
		r, err := s.vision.ReadBrandAndColor(gCtx, req.ImageBytes)
		if err != nil {
			s.logger.Warnf("vision brand/color read failed: %v", err)
			return nil // сигнал отсутствует, не ошибка запроса
		}
		if r != nil {
			read = *r
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, e.Wrap(op, err)
	}

	neighbors, err := s.catalog.SearchNearest(ctx, embedRes.Vector, analyzeLimit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(neighbors) == 0 {
		s.logger.Warnf("no similar items found for analysis")
		return s.defaultAnalysis(embedRes.Vector, read), nil
	}

	var (
		cls   analysis.Classification
		brand analysis.BrandDecision
		aggr  analysis.Aggregates
	)

	// Классификация, бренд и агрегация читают один и тот же эмбеддинг и
	// список соседей, между собой не зависят и выполняются параллельно.
	cg, _ := errgroup.WithContext(ctx)
	cg.Go(func() error {
		cls = s.classifier.Classify(embedRes.Vector)
		return nil
	})
	cg.Go(func() error {
		brand = s.brands.Resolve(analysis.BrandSignals{
			DirectRead:   read.Brand,
			NeighborText: analysis.NeighborText(neighbors),
			Embedding:    embedRes.Vector,
		})
		return nil
	})
	cg.Go(func() error {
		aggr = s.aggregator.Aggregate(neighbors)
		return nil
	})
	_ = cg.Wait()

	colors, colorConfs := applyVisionColor(cls, read)
	detectedItem := buildItemName(colors, cls.Pattern, cls.SpecificCategory)

	return &domain.AnalysisResult{
		DetectedItem:       detectedItem,
		LikelyBrand:        brand.Brand,
		Category:           cls.Category,
		SpecificCategory:   cls.SpecificCategory,
		EstimatedSize:      aggr.Size,
		EstimatedCondition: aggr.Condition,
		Description:        buildAnalysisDescription(brand.Brand, detectedItem, aggr.Size, aggr.Condition),
		Colors:             colors,
		Pattern:            cls.Pattern,
		Materials:          aggr.Materials,
		EstimatedPrice:     aggr.EstimatedPrice,
		Confidence:         round2(aggr.Confidence),
		ConfidenceScores: domain.ConfidenceScores{
			Category: cls.CategoryConfidence,
			Colors:   colorConfs,
			Pattern:  cls.PatternConfidence,
			Brand:    round2(brand.Confidence),
		},
	}, nil
}

// defaultAnalysis — спроектированный фолбэк на пустую выдачу индекса:
// атрибуты берутся только из zero-shot классификации, цена отсутствует,
// итоговая уверенность нулевая. Это не ошибка.
func (s *SearchUseCase) defaultAnalysis(vector []float32, read VisionRead) *domain.AnalysisResult {
	cls := s.classifier.Classify(vector)
	colors, colorConfs := applyVisionColor(cls, read)
	detectedItem := buildItemName(colors, cls.Pattern, cls.SpecificCategory)

	return &domain.AnalysisResult{
		DetectedItem:       detectedItem,
		LikelyBrand:        "",
		Category:           cls.Category,
		SpecificCategory:   cls.SpecificCategory,
		EstimatedSize:      "M",
		EstimatedCondition: "excellent",
		Description:        fmt.Sprintf("%s in excellent condition", detectedItem),
		Colors:             colors,
		Pattern:            cls.Pattern,
		Materials:          []string{},
		EstimatedPrice:     nil,
		Confidence:         0.0,
		ConfidenceScores: domain.ConfidenceScores{
			Category: cls.CategoryConfidence,
			Colors:   colorConfs,
			Pattern:  cls.PatternConfidence,
			Brand:    0.0,
		},
	}
}

// GenerateDescription строит короткое фактологичное описание товара
// vision-моделью с шаблонным фолбэком при её недоступности.
func (s *SearchUseCase) GenerateDescription(ctx context.Context, req *GenerateDescriptionReq) (*GenerateDescriptionRes, error) {
	const op = "SearchUseCase.GenerateDescription"

	if len(req.ImageBytes) == 0 {
		return nil, e.Wrap(op, e.ErrImageRequired)
	}

	condition := req.Condition
	if condition == "" {
		condition = "Good"
	}

	contextParts := make([]string, 0, 3)
	if len(req.Colors) > 0 {
		contextParts = append(contextParts, strings.Join(req.Colors, " "))
	}
	if req.Brand != "" {
		contextParts = append(contextParts, "from "+req.Brand)
	}
	category := req.Category
	if category == "" {
		category = "clothing item"
	}
	contextParts = append(contextParts, category)

	description, err := s.vision.Describe(ctx, &DescribeReq{
		ImageBytes: req.ImageBytes,
		Context:    strings.Join(contextParts, " "),
		Condition:  condition,
	})
	if err == nil {
		return &GenerateDescriptionRes{
			Description: description,
			Method:      "gpt4_vision",
			Confidence:  0.95,
		}, nil
	}

	s.logger.Warnf("vision description failed, falling back to template: %v", err)

	return &GenerateDescriptionRes{
		Description: templateDescription(req, category, condition),
		Method:      "template",
		Confidence:  0.75,
	}, nil
}

// templateDescription собирает описание из переданных атрибутов.
func templateDescription(req *GenerateDescriptionReq, category, condition string) string {
	parts := make([]string, 0, 4)

	switch {
	case req.Brand != "" && len(req.Colors) > 0:
		parts = append(parts, strings.TrimSpace(fmt.Sprintf("%s %s %s", req.Brand, req.Colors[0], category)))
	case len(req.Colors) > 0:
		parts = append(parts, fmt.Sprintf("%s %s", req.Colors[0], category))
	case req.Brand != "":
		parts = append(parts, fmt.Sprintf("%s %s", req.Brand, category))
	default:
		parts = append(parts, titleWords(category))
	}

	if req.Size != "" {
		parts = append(parts, "Size "+req.Size)
	}

	parts = append(parts, condition+" condition")

	if len(req.Materials) > 0 {
		parts = append(parts, req.Materials[0]+" material")
	}

	return strings.Join(parts, ", ") + "."
}

// applyVisionColor подменяет цвета классификатора цветом, прочитанным
// vision-моделью: для цветов она точнее CLIP.
func applyVisionColor(cls analysis.Classification, read VisionRead) ([]string, []float64) {
	if read.Color == "" {
		return cls.Colors, cls.ColorConfidences
	}

	return []string{titleWords(read.Color)}, []float64{visionColorConfidence}
}

// buildItemName собирает отображаемое имя вещи: цвет, паттерн (кроме
// однотонного), гранулярная категория.
func buildItemName(colors []string, pattern, specificCategory string) string {
	parts := make([]string, 0, 3)

	if len(colors) > 0 {
		parts = append(parts, colors[0])
	}
	if pattern != "" && !strings.EqualFold(pattern, "solid") {
		parts = append(parts, pattern)
	}
	parts = append(parts, titleWords(strings.ReplaceAll(specificCategory, "_", " ")))

	name := strings.Join(parts, " ")
	if name == "" {
		return "Fashion Item"
	}

	return name
}

// buildAnalysisDescription — "Brand Item, Size M, Excellent."
func buildAnalysisDescription(brand, detectedItem, size, condition string) string {
	parts := make([]string, 0, 4)

	if brand != "" {
		parts = append(parts, brand)
	}
	parts = append(parts, detectedItem)
	if size != "" {
		parts = append(parts, "Size "+size)
	}
	if condition != "" {
		parts = append(parts, titleWords(condition))
	}

	return strings.Join(parts, ", ") + "."
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
