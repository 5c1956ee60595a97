package analysis

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Пороги принятия сигналов бренда. Порядок доверия: прямое чтение
// маркировки > частота в тексте соседей > визуальный zero-shot.
// Ниже порога бренд не угадывается вовсе.
const (
	directReadConfidence = 0.95

	textMineGate     = 3
	textConfidenceLo = 0.6
	textConfidence85 = 0.85
	textConfidenceUp = 0.08

	visualGate = 0.40
)

var titleCaser = cases.Title(language.English)

// BrandSignals — входы резолвера: сырой текст, прочитанный vision-моделью
// с вещи (пустая строка — сигнал отсутствует), конкатенированный текст
// соседей в нижнем регистре и эмбеддинг запроса.
type BrandSignals struct {
	DirectRead   string
	NeighborText string
	Embedding    []float32
}

// BrandDecision — выбранный бренд, его уверенность и имя сигнала,
// который сработал (пустое — ни один).
type BrandDecision struct {
	Brand      string
	Confidence float64
	Signal     string
}

// BrandResolver объединяет три независимых шумных сигнала бренда строгим
// приоритетом: сигналы оцениваются по порядку и первый принятый побеждает.
type BrandResolver struct {
	reg     *LabelRegistry
	signals []brandSignal
}

type brandSignal struct {
	name     string
	evaluate func(BrandSignals) (string, float64, bool)
}

func NewBrandResolver(reg *LabelRegistry) *BrandResolver {
	r := &BrandResolver{reg: reg}
	r.signals = []brandSignal{
		{name: "direct_read", evaluate: r.evaluateDirectRead},
		{name: "text_mining", evaluate: r.evaluateTextMining},
		{name: "visual_zero_shot", evaluate: r.evaluateVisual},
	}

	return r
}

// Resolve возвращает первый принятый сигнал либо пустой бренд с нулевой
// уверенностью, если ни один порог не пройден.
func (r *BrandResolver) Resolve(signals BrandSignals) BrandDecision {
	for _, s := range r.signals {
		if brand, conf, ok := s.evaluate(signals); ok {
			return BrandDecision{Brand: brand, Confidence: conf, Signal: s.name}
		}
	}

	return BrandDecision{}
}

// evaluateDirectRead сопоставляет прочитанный текст с таблицей алиасов;
// неизвестный текст длиннее двух символов принимается как есть в Title Case.
func (r *BrandResolver) evaluateDirectRead(s BrandSignals) (string, float64, bool) {
	detected := strings.ToLower(strings.TrimSpace(s.DirectRead))
	if detected == "" {
		return "", 0, false
	}

	if canonical, ok := matchBrandAlias(detected); ok {
		return canonical, directReadConfidence, true
	}

	if len(detected) > 2 {
		return titleCaser.String(detected), directReadConfidence, true
	}

	return "", 0, false
}

// evaluateTextMining считает вхождения брендов словаря в тексте соседей;
// кандидат принимается при не менее чем textMineGate вхождениях.
func (r *BrandResolver) evaluateTextMining(s BrandSignals) (string, float64, bool) {
	var (
		best      string
		bestCount int
	)
	for _, brand := range textBrandVocabulary {
		if count := strings.Count(s.NeighborText, brand); count > bestCount {
			best, bestCount = brand, count
		}
	}

	if bestCount < textMineGate {
		return "", 0, false
	}

	conf := textConfidenceLo + float64(bestCount)*textConfidenceUp
	if conf > textConfidence85 {
		conf = textConfidence85
	}

	return canonicalTextBrand(best), conf, true
}

// evaluateVisual сравнивает эмбеддинг с метками визуально различимых
// брендов; высокий порог отсекает ненадёжные совпадения, нулевая метка
// "без бренда" не принимается никогда.
func (r *BrandResolver) evaluateVisual(s BrandSignals) (string, float64, bool) {
	if len(s.Embedding) == 0 {
		return "", 0, false
	}

	idx, sim := argmax(s.Embedding, r.reg.brands.vectors)
	name := r.reg.brands.names[idx]
	if name == "" || sim <= visualGate {
		return "", 0, false
	}

	return name, round2(sim), true
}

// matchBrandAlias ищет алиас, совпадающий с прочитанным текстом как
// подстрока в любую сторону. Кандидаты перебираются от длинных к коротким,
// чтобы "polo ralph lauren" побеждал "polo".
func matchBrandAlias(detected string) (string, bool) {
	keys := make([]string, 0, len(brandAliases))
	for k := range brandAliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		if k == detected || strings.Contains(detected, k) || strings.Contains(k, detected) {
			return brandAliases[k], true
		}
	}

	return "", false
}

// canonicalTextBrand приводит бренд из словаря к отображаемому виду.
func canonicalTextBrand(brand string) string {
	display := titleCaser.String(brand)
	display = strings.ReplaceAll(display, "Ami Paris", "AMI Paris")
	display = strings.ReplaceAll(display, "Ysl", "YSL")
	display = strings.ReplaceAll(display, "Apc", "A.P.C.")

	return display
}
