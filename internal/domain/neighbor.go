package domain

// NeighborItem — типизированная проекция позиции каталога, которую
// возвращает векторный индекс. Ядру анализа нужны только эти поля,
// а не полная строка каталога.
type NeighborItem struct {
	ID          int64
	Title       string
	Description string
	PriceCents  *int64
	Currency    string
	ImageURL    string
	RedirectURL string
	Source      string
	Brand       string
	Category    string
}

// Neighbor — кандидат поиска: проекция позиции и косинусная дистанция
// до запроса. Меньшая дистанция означает большую схожесть.
type Neighbor struct {
	Item     NeighborItem
	Distance float64
}

// Price возвращает цену соседа в долларах или nil, если цена не указана.
func (n *Neighbor) Price() *float64 {
	if n.Item.PriceCents == nil {
		return nil
	}

	p := float64(*n.Item.PriceCents) / 100
	return &p
}
