package domain

// ConfidenceScores — покомпонентные оценки уверенности анализа.
// Значения округлены до двух знаков.
type ConfidenceScores struct {
	Category float64
	Colors   []float64
	Pattern  float64
	Brand    float64
}

// AnalysisResult — итог анализа одного изображения: атрибуты вещи,
// выведенные из zero-shot классификации и ближайших соседей каталога.
// Объект эфемерный, собирается на каждый запрос заново.
type AnalysisResult struct {
	DetectedItem       string
	LikelyBrand        string
	Category           string
	SpecificCategory   string
	EstimatedSize      string
	EstimatedCondition string
	Description        string
	Colors             []string
	Pattern            string
	Materials          []string
	EstimatedPrice     *float64
	Confidence         float64
	ConfidenceScores   ConfidenceScores
}
