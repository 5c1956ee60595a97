package analysis

import (
	"math"
	"strings"

	"github.com/findthisfit/go-backend/internal/domain"
)

// Пороги агрегации по соседям. Дистанционные границы состояния и отсечка
// выбросов цены — эмпирические константы, сохраняемые ради совместимости.
const (
	priceTrimSigmas  = 3.0
	priceTrimMinN    = 3 // сверх этого числа сэмплов включается отсечка выбросов
	conditionBandTop = 0.3
	conditionBandMid = 0.5

	maxMaterials = 3
)

// Aggregates — атрибуты, выведенные из множества ближайших соседей.
type Aggregates struct {
	EstimatedPrice *float64
	Condition      string
	Size           string
	Materials      []string
	Confidence     float64
}

// Aggregator выводит цену, состояние, размер и материалы из k ближайших
// соседей. Все операции — чистые функции от списка соседей.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate агрегирует весь набор атрибутов. Список соседей обязан быть
// непустым и отсортированным по возрастанию дистанции.
func (a *Aggregator) Aggregate(neighbors []domain.Neighbor) Aggregates {
	text := NeighborText(neighbors)
	top1 := neighbors[0].Distance

	prices := make([]float64, 0, len(neighbors))
	for i := range neighbors {
		if p := neighbors[i].Price(); p != nil {
			prices = append(prices, *p)
		}
	}

	return Aggregates{
		EstimatedPrice: EstimatePrice(prices),
		Condition:      EstimateCondition(top1),
		Size:           EstimateSize(text),
		Materials:      DetectMaterials(text),
		Confidence:     OverallConfidence(top1),
	}
}

// NeighborText конкатенирует заголовки и описания соседей в нижнем
// регистре — общий корпус для текстовых эвристик.
func NeighborText(neighbors []domain.Neighbor) string {
	parts := make([]string, 0, len(neighbors)*2)
	for i := range neighbors {
		if t := neighbors[i].Item.Title; t != "" {
			parts = append(parts, t)
		}
	}
	for i := range neighbors {
		if d := neighbors[i].Item.Description; d != "" {
			parts = append(parts, d)
		}
	}

	return strings.ToLower(strings.Join(parts, " "))
}

// EstimatePrice усредняет ненулевые цены соседей. При более чем
// priceTrimMinN сэмплах значения дальше трёх стандартных отклонений от
// среднего отбрасываются; если фильтр опустошил набор, берётся среднее
// без отсечки. Ноль сэмплов — оценки нет, число не выдумывается.
func EstimatePrice(prices []float64) *float64 {
	if len(prices) == 0 {
		return nil
	}

	m := mean(prices)
	if len(prices) > priceTrimMinN {
		sd := stdev(prices, m)
		kept := prices[:0:0]
		for _, p := range prices {
			if math.Abs(p-m) < priceTrimSigmas*sd {
				kept = append(kept, p)
			}
		}

		if len(kept) > 0 {
			m = mean(kept)
		}
	}

	est := round2(m)
	return &est
}

// EstimateCondition дискретизирует дистанцию до ближайшего соседа в три
// корзины. Границы строгие: 0.3 уже "good", 0.5 уже "fair".
func EstimateCondition(topDistance float64) string {
	switch {
	case topDistance < conditionBandTop:
		return "excellent"
	case topDistance < conditionBandMid:
		return "good"
	default:
		return "fair"
	}
}

// EstimateSize выбирает размер с наибольшим числом вхождений токена в
// тексте соседей; при нулевых счётчиках возвращается defaultSize —
// размер не остаётся пустым никогда.
func EstimateSize(text string) string {
	var (
		best      string
		bestCount int
	)
	for _, token := range sizeTokens {
		if count := strings.Count(text, token); count > bestCount {
			best, bestCount = token, count
		}
	}

	if bestCount == 0 {
		return defaultSize
	}

	return strings.ToUpper(best)
}

// DetectMaterials возвращает материалы, чьи ключевые слова встретились в
// тексте соседей, не более maxMaterials.
func DetectMaterials(text string) []string {
	materials := make([]string, 0, maxMaterials)
	for _, material := range materialOrder {
		for _, kw := range materialKeywords[material] {
			if strings.Contains(text, kw) {
				materials = append(materials, titleCaser.String(material))
				break
			}
		}
		if len(materials) == maxMaterials {
			break
		}
	}

	return materials
}

// OverallConfidence переводит дистанцию лучшего совпадения в [0,1].
// Это аффинное перемасштабирование, а не калиброванная вероятность.
func OverallConfidence(topDistance float64) float64 {
	return math.Max(0, math.Min(1, 1-topDistance))
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}

// stdev — выборочное стандартное отклонение (делитель n-1).
func stdev(xs []float64, m float64) float64 {
	if len(xs) < 2 {
		return 0
	}

	var sum float64
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}

	return math.Sqrt(sum / float64(len(xs)-1))
}
