package http

import (
	"net/http"

	"github.com/findthisfit/go-backend/internal/domain"
	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/findthisfit/go-backend/pkg/logger"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUC
	logger        logger.Logger
}

func NewSearchHandler(searchUsecase usecase.SearchUC, logger logger.Logger) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase, logger: logger}
}

type searchByImageRequest struct {
	Image string `json:"image"`
}

type searchByTextRequest struct {
	Query string `json:"query"`
}

type searchCombinedRequest struct {
	Image string `json:"image,omitempty"`
	Query string `json:"query,omitempty"`
}

type foundItemResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"image_url"`
	Distance    float64  `json:"distance"`
	RedirectURL string   `json:"redirect_url,omitempty"`
	Source      string   `json:"source,omitempty"`
}

type searchResponse struct {
	Items []foundItemResponse `json:"items"`
}

type confidenceScoresResponse struct {
	Category float64   `json:"category"`
	Colors   []float64 `json:"colors"`
	Pattern  float64   `json:"pattern"`
	Brand    float64   `json:"brand"`
}

type analyzeImageResponse struct {
	DetectedItem       string                   `json:"detected_item"`
	LikelyBrand        string                   `json:"likely_brand"`
	Category           string                   `json:"category"`
	SpecificCategory   string                   `json:"specific_category"`
	EstimatedSize      string                   `json:"estimated_size"`
	EstimatedCondition string                   `json:"estimated_condition"`
	Description        string                   `json:"description"`
	Colors             []string                 `json:"colors"`
	Pattern            string                   `json:"pattern"`
	Materials          []string                 `json:"materials"`
	EstimatedPrice     *float64                 `json:"estimated_price"`
	Confidence         float64                  `json:"confidence"`
	ConfidenceScores   confidenceScoresResponse `json:"confidence_scores"`
}

type generateDescriptionRequest struct {
	Image     string   `json:"image"`
	Category  string   `json:"category,omitempty"`
	Brand     string   `json:"brand,omitempty"`
	Colors    []string `json:"colors,omitempty"`
	Condition string   `json:"condition,omitempty"`
	Materials []string `json:"materials,omitempty"`
	Size      string   `json:"size,omitempty"`
}

type generateDescriptionResponse struct {
	Description string  `json:"description"`
	Method      string  `json:"method"`
	Confidence  float64 `json:"confidence"`
}

// searchByImage
//
//	@Summary		Поиск похожих вещей по изображению
//	@Description	Возвращает визуально похожие позиции каталога
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			request	body		searchByImageRequest	true	"Изображение в base64"
//	@Success		200		{object}	searchResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/search_by_image [post]
func (h *SearchHandler) searchByImage(w http.ResponseWriter, r *http.Request) {
	var req searchByImageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	imageBytes, err := decodeBase64Image(req.Image)
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.searchUsecase.SearchByImage(r.Context(), &usecase.SearchByImageReq{ImageBytes: imageBytes})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSearchResponse(res))
}

// searchByText
//
//	@Summary		Поиск вещей по текстовому описанию
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			request	body		searchByTextRequest	true	"Текст запроса"
//	@Success		200		{object}	searchResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/search_by_text [post]
func (h *SearchHandler) searchByText(w http.ResponseWriter, r *http.Request) {
	var req searchByTextRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.searchUsecase.SearchByText(r.Context(), &usecase.SearchByTextReq{Query: req.Query})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSearchResponse(res))
}

// searchCombined
//
//	@Summary		Мультимодальный поиск по изображению и тексту
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			request	body		searchCombinedRequest	true	"Изображение и/или текст"
//	@Success		200		{object}	searchResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/search_combined [post]
func (h *SearchHandler) searchCombined(w http.ResponseWriter, r *http.Request) {
	var req searchCombinedRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	imageBytes, err := decodeBase64Image(req.Image)
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.searchUsecase.SearchCombined(r.Context(), &usecase.SearchCombinedReq{
		ImageBytes: imageBytes,
		Query:      req.Query,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSearchResponse(res))
}

// analyzeImage
//
//	@Summary		Анализ атрибутов вещи по фото
//	@Description	Определяет категорию, цвета, бренд, размер, состояние и оценку цены
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			request	body		searchByImageRequest	true	"Изображение в base64"
//	@Success		200		{object}	analyzeImageResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/analyze_image [post]
func (h *SearchHandler) analyzeImage(w http.ResponseWriter, r *http.Request) {
	var req searchByImageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	imageBytes, err := decodeBase64Image(req.Image)
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	result, err := h.searchUsecase.AnalyzeImage(r.Context(), &usecase.AnalyzeImageReq{ImageBytes: imageBytes})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toAnalyzeResponse(result))
}

// generateDescription
//
//	@Summary		Генерация описания товара по фото
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			request	body		generateDescriptionRequest	true	"Изображение и атрибуты"
//	@Success		200		{object}	generateDescriptionResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/generate_description [post]
func (h *SearchHandler) generateDescription(w http.ResponseWriter, r *http.Request) {
	var req generateDescriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	imageBytes, err := decodeBase64Image(req.Image)
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.searchUsecase.GenerateDescription(r.Context(), &usecase.GenerateDescriptionReq{
		ImageBytes: imageBytes,
		Category:   req.Category,
		Brand:      req.Brand,
		Colors:     req.Colors,
		Condition:  req.Condition,
		Materials:  req.Materials,
		Size:       req.Size,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, generateDescriptionResponse{
		Description: res.Description,
		Method:      res.Method,
		Confidence:  res.Confidence,
	})
}

func toSearchResponse(res *usecase.SearchRes) searchResponse {
	items := make([]foundItemResponse, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, foundItemResponse{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Price:       item.Price,
			ImageURL:    item.ImageURL,
			Distance:    item.Distance,
			RedirectURL: item.RedirectURL,
			Source:      item.Source,
		})
	}

	return searchResponse{Items: items}
}

func toAnalyzeResponse(result *domain.AnalysisResult) analyzeImageResponse {
	return analyzeImageResponse{
		DetectedItem:       result.DetectedItem,
		LikelyBrand:        result.LikelyBrand,
		Category:           result.Category,
		SpecificCategory:   result.SpecificCategory,
		EstimatedSize:      result.EstimatedSize,
		EstimatedCondition: result.EstimatedCondition,
		Description:        result.Description,
		Colors:             result.Colors,
		Pattern:            result.Pattern,
		Materials:          result.Materials,
		EstimatedPrice:     result.EstimatedPrice,
		Confidence:         result.Confidence,
		ConfidenceScores: confidenceScoresResponse{
			Category: result.ConfidenceScores.Category,
			Colors:   result.ConfidenceScores.Colors,
			Pattern:  result.ConfidenceScores.Pattern,
			Brand:    result.ConfidenceScores.Brand,
		},
	}
}
