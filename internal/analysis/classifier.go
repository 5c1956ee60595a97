package analysis

import (
	"math"
	"sort"

	"github.com/findthisfit/go-backend/pkg/vec"
)

// Пороги отбора вторичных цветов. Абсолютные CLIP-оценки цветов низкие
// (0.22–0.27), поэтому относительный отступ от лидера важнее абсолютного
// значения. Значения подобраны эмпирически, см. DESIGN.md.
const (
	colorMargin = 0.02
	colorFloor  = 0.24

	maxColors = 3
)

// Classification — результат zero-shot классификации запроса по
// фиксированным таксономиям.
type Classification struct {
	Category           string // грубая категория для совместимости
	SpecificCategory   string // гранулярная категория
	CategoryConfidence float64
	Colors             []string
	ColorConfidences   []float64
	Pattern            string
	PatternConfidence  float64
}

// Classifier сопоставляет эмбеддинг запроса с пред-вычисленными
// эмбеддингами меток. Детерминирован: одинаковый вход даёт одинаковый
// результат.
type Classifier struct {
	reg *LabelRegistry
}

func NewClassifier(reg *LabelRegistry) *Classifier {
	return &Classifier{reg: reg}
}

// Classify выбирает категорию (argmax), до трёх цветов (лидер всегда,
// вторичные в пределах colorMargin от лидера и выше colorFloor) и
// паттерн (argmax без порога).
func (c *Classifier) Classify(embedding []float32) Classification {
	catIdx, catSim := argmax(embedding, c.reg.categories.vectors)
	specific := c.reg.categories.names[catIdx]

	bucket, ok := categoryBuckets[specific]
	if !ok {
		bucket = defaultCategoryBucket
	}

	colors, colorConfs := c.classifyColors(embedding)

	patIdx, patSim := argmax(embedding, c.reg.patterns.vectors)

	return Classification{
		Category:           bucket,
		SpecificCategory:   specific,
		CategoryConfidence: round2(catSim),
		Colors:             colors,
		ColorConfidences:   colorConfs,
		Pattern:            c.reg.patterns.names[patIdx],
		PatternConfidence:  round2(patSim),
	}
}

func (c *Classifier) classifyColors(embedding []float32) ([]string, []float64) {
	ranked := rankBySimilarity(embedding, c.reg.colors.vectors)

	top := ranked[0]
	colors := []string{c.reg.colors.names[top.idx]}
	confs := []float64{round2(top.sim)}

	for _, cand := range ranked[1:maxColors] {
		if top.sim-cand.sim < colorMargin && cand.sim > colorFloor {
			colors = append(colors, c.reg.colors.names[cand.idx])
			confs = append(confs, round2(cand.sim))
		}
	}

	return colors, confs
}

type scored struct {
	idx int
	sim float64
}

// rankBySimilarity возвращает индексы меток по убыванию близости.
// Сортировка стабильна: при равенстве побеждает более ранняя метка.
func rankBySimilarity(embedding []float32, labels [][]float32) []scored {
	ranked := make([]scored, len(labels))
	for i, lv := range labels {
		ranked[i] = scored{idx: i, sim: vec.Cosine(embedding, lv)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].sim > ranked[j].sim
	})

	return ranked
}

func argmax(embedding []float32, labels [][]float32) (int, float64) {
	bestIdx, bestSim := 0, math.Inf(-1)
	for i, lv := range labels {
		if sim := vec.Cosine(embedding, lv); sim > bestSim {
			bestIdx, bestSim = i, sim
		}
	}

	return bestIdx, bestSim
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
