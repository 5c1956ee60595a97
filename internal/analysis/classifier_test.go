package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тестовый реестр строится на ортонормированных метках: каждой метке
// отведена своя координата, поэтому косинусная близость единичного
// запроса к метке равна соответствующей компоненте запроса.
const (
	testDim = 73

	catOff   = 0  // 33 категории
	colorOff = 33 // 13 цветов
	patOff   = 46 // 12 паттернов
	brandOff = 58 // 14 брендов

	slackDim = 72
)

func basisVectors(offset, n int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		v := make([]float32, testDim)
		v[offset+i] = 1
		out[i] = v
	}

	return out
}

func testRegistry() *LabelRegistry {
	return NewLabelRegistryFromVectors(
		basisVectors(catOff, len(categoryNames)),
		basisVectors(colorOff, len(colorNames)),
		basisVectors(patOff, len(patternNames)),
		basisVectors(brandOff, len(distinctiveBrandNames)),
	)
}

// queryVector возвращает единичный вектор с заданными компонентами;
// остаток нормы уходит в свободную координату без меток.
func queryVector(t *testing.T, sims map[int]float64) []float32 {
	t.Helper()

	v := make([]float32, testDim)
	var ss float64
	for idx, sim := range sims {
		require.Less(t, idx, slackDim)
		v[idx] = float32(sim)
		ss += sim * sim
	}
	require.Less(t, ss, 1.0)
	v[slackDim] = float32(math.Sqrt(1 - ss))

	return v
}

func TestClassifyCategoryArgmax(t *testing.T) {
	c := NewClassifier(testRegistry())

	// hoodie — индекс 6, bucket outerwear
	q := queryVector(t, map[int]float64{
		catOff + 6:  0.8,
		catOff + 12: 0.3, // tshirt заметно дальше
		colorOff:    0.3,
		patOff:      0.5,
	})

	cls := c.Classify(q)

	assert.Equal(t, "hoodie", cls.SpecificCategory)
	assert.Equal(t, "outerwear", cls.Category)
	assert.InDelta(t, 0.8, cls.CategoryConfidence, 1e-9)
}

func TestClassifyCategoryBuckets(t *testing.T) {
	c := NewClassifier(testRegistry())

	cases := []struct {
		idx    int
		name   string
		bucket string
	}{
		{18, "jeans", "bottoms"},
		{17, "dress", "dresses"},
		{27, "boots", "shoes"},
		{29, "backpack", "bags"},
		{32, "hat", "accessories"},
	}
	for _, tc := range cases {
		q := queryVector(t, map[int]float64{catOff + tc.idx: 0.9})
		cls := c.Classify(q)
		assert.Equal(t, tc.name, cls.SpecificCategory)
		assert.Equal(t, tc.bucket, cls.Category, tc.name)
	}
}

func TestClassifyPatternArgmaxWithoutThreshold(t *testing.T) {
	c := NewClassifier(testRegistry())

	// Graphic — индекс 2; порог на паттерн не накладывается, argmax
	// срабатывает и на слабом сигнале.
	q := queryVector(t, map[int]float64{patOff + 2: 0.1})

	cls := c.Classify(q)

	assert.Equal(t, "Graphic", cls.Pattern)
	assert.InDelta(t, 0.1, cls.PatternConfidence, 1e-9)
}

func TestClassifyColorsSecondaryWithinMargin(t *testing.T) {
	c := NewClassifier(testRegistry())

	// Black лидер; White в пределах отступа и выше пола; Gray дальше
	// отступа и отбрасывается.
	q := queryVector(t, map[int]float64{
		colorOff:     0.30,
		colorOff + 1: 0.285,
		colorOff + 2: 0.27,
	})

	cls := c.Classify(q)

	assert.Equal(t, []string{"Black", "White"}, cls.Colors)
	require.Len(t, cls.ColorConfidences, 2)
	assert.InDelta(t, 0.30, cls.ColorConfidences[0], 1e-9)
	assert.InDelta(t, 0.29, cls.ColorConfidences[1], 1e-9) // round2
}

func TestClassifyColorsFloorCutsSecondary(t *testing.T) {
	c := NewClassifier(testRegistry())

	// Red в пределах отступа, но ниже пола 0.24.
	q := queryVector(t, map[int]float64{
		colorOff:     0.25,
		colorOff + 3: 0.235,
	})

	cls := c.Classify(q)

	assert.Equal(t, []string{"Black"}, cls.Colors)
}

func TestClassifyColorsLeaderKeptBelowFloor(t *testing.T) {
	c := NewClassifier(testRegistry())

	// Лидер ниже пола всё равно возвращается: цветов меньше одного
	// не бывает.
	q := queryVector(t, map[int]float64{
		colorOff + 4: 0.20,
		colorOff + 5: 0.19,
	})

	cls := c.Classify(q)

	assert.Equal(t, []string{"Blue"}, cls.Colors)
}

func TestClassifyColorsCappedAtThree(t *testing.T) {
	c := NewClassifier(testRegistry())

	q := queryVector(t, map[int]float64{
		colorOff:     0.300,
		colorOff + 1: 0.295,
		colorOff + 2: 0.294,
		colorOff + 3: 0.293,
	})

	cls := c.Classify(q)

	assert.Equal(t, []string{"Black", "White", "Gray"}, cls.Colors)
	assert.Len(t, cls.ColorConfidences, 3)
}

func TestClassifyColorsTieResolvedByLabelOrder(t *testing.T) {
	c := NewClassifier(testRegistry())

	// Одинаковая близость у White и Red: побеждает более ранняя метка.
	q := queryVector(t, map[int]float64{
		colorOff + 1: 0.26,
		colorOff + 3: 0.26,
	})

	cls := c.Classify(q)

	assert.Equal(t, []string{"White", "Red"}, cls.Colors)
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(testRegistry())

	q := queryVector(t, map[int]float64{
		catOff + 2:   0.7,
		colorOff + 5: 0.28,
		patOff + 10:  0.4,
	})

	first := c.Classify(q)
	second := c.Classify(q)

	assert.Equal(t, first, second)
}
