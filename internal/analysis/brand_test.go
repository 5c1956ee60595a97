package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDirectReadAlias(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	d := r.Resolve(BrandSignals{DirectRead: "  NIKE "})

	assert.Equal(t, "Nike", d.Brand)
	assert.Equal(t, 0.95, d.Confidence)
	assert.Equal(t, "direct_read", d.Signal)
}

func TestResolveDirectReadLongestAliasWins(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	// "carhartt wip" содержит и "carhartt": длинный алиас проверяется
	// раньше короткого.
	d := r.Resolve(BrandSignals{DirectRead: "carhartt wip"})

	assert.Equal(t, "Carhartt WIP", d.Brand)
}

func TestResolveDirectReadUnknownBrandAcceptedAsIs(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	d := r.Resolve(BrandSignals{DirectRead: "vetements"})

	assert.Equal(t, "Vetements", d.Brand)
	assert.Equal(t, 0.95, d.Confidence)
	assert.Equal(t, "direct_read", d.Signal)
}

func TestResolveDirectReadTooShortIgnored(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	d := r.Resolve(BrandSignals{DirectRead: "xy"})

	assert.Equal(t, BrandDecision{}, d)
}

func TestResolveDirectReadBeatsTextMining(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	d := r.Resolve(BrandSignals{
		DirectRead:   "gucci",
		NeighborText: "nike nike nike nike nike",
	})

	assert.Equal(t, "Gucci", d.Brand)
	assert.Equal(t, "direct_read", d.Signal)
}

func TestResolveTextMiningConfidenceGrowsWithCount(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	d := r.Resolve(BrandSignals{
		NeighborText: "nike air max nike dunk low nike jordan retro",
	})

	assert.Equal(t, "Nike", d.Brand)
	assert.InDelta(t, 0.84, d.Confidence, 1e-9)
	assert.Equal(t, "text_mining", d.Signal)
}

func TestResolveTextMiningConfidenceCapped(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	d := r.Resolve(BrandSignals{
		NeighborText: strings.Repeat("prada bag ", 5),
	})

	assert.Equal(t, "Prada", d.Brand)
	assert.InDelta(t, 0.85, d.Confidence, 1e-9)
}

func TestResolveTextMiningBelowGateRejected(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	d := r.Resolve(BrandSignals{NeighborText: "nike hoodie nike tee"})

	assert.Equal(t, BrandDecision{}, d)
}

func TestResolveTextMiningCanonicalDisplay(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	d := r.Resolve(BrandSignals{NeighborText: "ysl bag ysl wallet ysl belt"})

	assert.Equal(t, "YSL", d.Brand)
}

func TestResolveVisualAboveGate(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	// Nike — индекс 1 визуальной таксономии.
	q := queryVector(t, map[int]float64{brandOff + 1: 0.5})

	d := r.Resolve(BrandSignals{Embedding: q})

	assert.Equal(t, "Nike", d.Brand)
	assert.InDelta(t, 0.5, d.Confidence, 1e-9)
	assert.Equal(t, "visual_zero_shot", d.Signal)
}

func TestResolveVisualBelowGateRejected(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	q := queryVector(t, map[int]float64{brandOff + 1: 0.39})

	d := r.Resolve(BrandSignals{Embedding: q})

	assert.Equal(t, BrandDecision{}, d)
}

func TestResolveVisualNullLabelNeverAccepted(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	// Последняя метка таксономии — нулевой вариант "без бренда";
	// даже уверенное совпадение с ней не даёт бренда.
	q := queryVector(t, map[int]float64{brandOff + len(distinctiveBrandNames) - 1: 0.9})

	d := r.Resolve(BrandSignals{Embedding: q})

	assert.Equal(t, BrandDecision{}, d)
}

func TestResolveNoSignals(t *testing.T) {
	r := NewBrandResolver(testRegistry())

	d := r.Resolve(BrandSignals{})

	assert.Equal(t, "", d.Brand)
	assert.Equal(t, 0.0, d.Confidence)
	assert.Equal(t, "", d.Signal)
}
