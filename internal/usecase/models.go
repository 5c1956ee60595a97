package usecase

// SEARCH USECASE

// SearchByImageReq — запрос поиска по изображению.
type SearchByImageReq struct {
	ImageBytes []byte
}

// SearchByTextReq — запрос поиска по текстовому описанию.
type SearchByTextReq struct {
	Query string
}

// SearchCombinedReq — комбинированный запрос; обязателен хотя бы один
// из входов.
type SearchCombinedReq struct {
	ImageBytes []byte
	Query      string
}

// AnalyzeImageReq — запрос анализа атрибутов вещи по изображению.
type AnalyzeImageReq struct {
	ImageBytes []byte
}

// FoundItem — DTO найденной позиции каталога для внешнего использования.
type FoundItem struct {
	ID          int64
	Title       string
	Description string
	Price       *float64
	ImageURL    string
	Distance    float64
	RedirectURL string
	Source      string
}

// SearchRes — ответ поиска: позиции по возрастанию дистанции.
type SearchRes struct {
	Items []FoundItem
}

// GenerateDescriptionReq — запрос генерации описания товара.
type GenerateDescriptionReq struct {
	ImageBytes []byte
	Category   string
	Brand      string
	Colors     []string
	Condition  string
	Materials  []string
	Size       string
}

// GenerateDescriptionRes — описание и способ его получения
// (gpt4_vision либо template).
type GenerateDescriptionRes struct {
	Description string
	Method      string
	Confidence  float64
}

// ITEM USECASE

// AddItemReq — запрос на добавление позиции каталога.
type AddItemReq struct {
	Title       string
	Description string
	PriceCents  *int64
	Brand       string
	Category    string
	Size        string
	Condition   string
	OwnerID     string
	Source      string
	Image       ItemImage
}

// ItemImage представляет изображение, переданное клиентом.
type ItemImage struct {
	Data     []byte
	MimeType string
	Size     int64
	Name     string
}

// AddItemRes — ответ с идентификатором созданной позиции.
type AddItemRes struct {
	ItemID int64
}

// GetItemsReq — запрос информации о позициях по их идентификаторам.
type GetItemsReq struct {
	IDs []int64
}

// GetItemsRes — ответ с данными запрошенных позиций.
type GetItemsRes struct {
	Items         []ItemInfo
	NotFoundItems []int64
}

// ItemInfo — DTO с информацией о позиции для внешнего использования.
type ItemInfo struct {
	ID         int64
	Title      string
	Category   string
	Brand      string
	PriceCents *int64
	ImageURL   string
}

// INFRASTRUCTURE

// EmbedRes — результат векторизации запроса.
type EmbedRes struct {
	Vector       []float32
	ModelVersion string
}

// VisionRead — бренд и цвет, прочитанные vision-моделью с изображения.
// Пустые строки означают отсутствие сигнала.
type VisionRead struct {
	Brand string
	Color string
}

// DescribeReq — контекст для генерации описания vision-моделью.
type DescribeReq struct {
	ImageBytes []byte
	Context    string
	Condition  string
}

// UploadImageReq — запрос на загрузку изображения позиции.
type UploadImageReq struct {
	Title string
	Image ItemImage
}

// ItemAddedEvent — событие добавления позиции для шины событий.
type ItemAddedEvent struct {
	ItemID       int64  `json:"item_id"`
	Title        string `json:"title"`
	Platform     string `json:"platform"`
	ImageKey     string `json:"image_key"`
	ModelVersion string `json:"model_version"`
}

// MAPPERS

func NewEmbedRes(vector []float32, modelVersion string) *EmbedRes {
	return &EmbedRes{Vector: vector, ModelVersion: modelVersion}
}

func NewSearchRes(items []FoundItem) *SearchRes {
	return &SearchRes{Items: items}
}

func NewGetItemsReq(ids []int64) *GetItemsReq {
	return &GetItemsReq{IDs: ids}
}

func NewGetItemsRes(items []ItemInfo, notFound []int64) *GetItemsRes {
	return &GetItemsRes{Items: items, NotFoundItems: notFound}
}

func NewUploadImageReq(title string, image ItemImage) *UploadImageReq {
	return &UploadImageReq{Title: title, Image: image}
}

func NewItemInfo(id int64, title, category, brand string, priceCents *int64, imageURL string) ItemInfo {
	return ItemInfo{
		ID:         id,
		Title:      title,
		Category:   category,
		Brand:      brand,
		PriceCents: priceCents,
		ImageURL:   imageURL,
	}
}
