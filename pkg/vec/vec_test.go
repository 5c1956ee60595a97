package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-3, 0}), 1e-9)
}

func TestCosineDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float32{1, 2}, []float32{1, 2, 3}))
	assert.Equal(t, 0.0, Cosine(nil, nil))
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 1}))
}

func TestNormalize(t *testing.T) {
	got := Normalize([]float32{3, 4})

	assert.InDelta(t, 0.6, got[0], 1e-6)
	assert.InDelta(t, 0.8, got[1], 1e-6)
}

func TestNormalizeZeroVector(t *testing.T) {
	assert.Equal(t, []float32{0, 0}, Normalize([]float32{0, 0}))
}
