// Package vec содержит векторную арифметику для сравнения эмбеддингов.
package vec

import "math"

// Cosine возвращает косинусную близость двух векторов.
// Возвращает 0 для векторов разной длины или нулевой нормы.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize возвращает копию вектора с единичной L2-нормой.
// Нулевой вектор возвращается без изменений.
func Normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}

	out := make([]float32, len(v))
	if norm == 0 {
		copy(out, v)
		return out
	}

	norm = math.Sqrt(norm)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}

	return out
}
