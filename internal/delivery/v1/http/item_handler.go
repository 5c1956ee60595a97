package http

import (
	"net/http"

	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/findthisfit/go-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

type ItemHandler struct {
	itemUsecase usecase.ItemUC
	logger      logger.Logger
}

func NewItemHandler(itemUsecase usecase.ItemUC, logger logger.Logger) *ItemHandler {
	return &ItemHandler{itemUsecase: itemUsecase, logger: logger}
}

type addItemResponse struct {
	ItemID int64 `json:"item_id"`
}

type itemInfoResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category,omitempty"`
	Brand      string `json:"brand,omitempty"`
	PriceCents *int64 `json:"price_cents"`
	ImageURL   string `json:"image_url,omitempty"`
}

type getItemsResponse struct {
	Items         []itemInfoResponse `json:"items"`
	NotFoundItems []int64            `json:"not_found_items,omitempty"`
}

// addItem
//
//	@Summary		Добавление позиции в каталог
//	@Description	Создаёт позицию каталога с изображением и вектором для поиска
//	@Tags			items
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			title		formData	string	true	"Заголовок объявления"
//	@Param			description	formData	string	false	"Описание"
//	@Param			price		formData	number	false	"Цена"
//	@Param			brand		formData	string	false	"Бренд"
//	@Param			category	formData	string	false	"Категория"
//	@Param			size		formData	string	false	"Размер"
//	@Param			condition	formData	string	false	"Состояние"
//	@Param			image		formData	file	true	"Изображение вещи"
//	@Success		201			{object}	addItemResponse
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/add_item [post]
func (h *ItemHandler) addItem(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 20 << 20
		maxMemory           = 16 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, e.Wrap(whereami.WhereAmI(), e.ErrUnsupportedMediaType))
		return
	}

	var priceCents *int64
	if priceStr := r.FormValue("price"); priceStr != "" {
		cents, err := parsePriceToCents(priceStr)
		if err != nil {
			h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
			WriteError(w, err)
			return
		}
		priceCents = &cents
	}

	image, err := parseItemImage(r.MultipartForm.File["image"])
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.itemUsecase.AddItem(r.Context(), &usecase.AddItemReq{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		PriceCents:  priceCents,
		Brand:       r.FormValue("brand"),
		Category:    r.FormValue("category"),
		Size:        r.FormValue("size"),
		Condition:   r.FormValue("condition"),
		OwnerID:     r.FormValue("owner_id"),
		Source:      r.FormValue("platform"),
		Image:       image,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, addItemResponse{ItemID: res.ItemID})
}

// getItemsInfo
//
//	@Summary		Информация о позициях каталога
//	@Tags			items
//	@Produce		json
//	@Param			ids	query		string	true	"Идентификаторы через запятую"
//	@Success		200	{object}	getItemsResponse
//	@Failure		400	{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/items [get]
func (h *ItemHandler) getItemsInfo(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDs(r.URL.Query().Get("ids"))
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.itemUsecase.GetItemsInfo(r.Context(), usecase.NewGetItemsReq(ids))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	items := make([]itemInfoResponse, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, itemInfoResponse{
			ID:         item.ID,
			Title:      item.Title,
			Category:   item.Category,
			Brand:      item.Brand,
			PriceCents: item.PriceCents,
			ImageURL:   item.ImageURL,
		})
	}

	WriteSuccess(w, http.StatusOK, getItemsResponse{
		Items:         items,
		NotFoundItems: res.NotFoundItems,
	})
}
