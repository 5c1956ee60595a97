package analysis

import (
	"context"

	"github.com/findthisfit/go-backend/pkg/e"
)

// TextEmbedder — минимальный контракт провайдера эмбеддингов, нужный
// реестру меток: батчевая векторизация текстовых фраз.
type TextEmbedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// labelSet хранит имена меток таксономии и их векторные представления
// в согласованном порядке.
type labelSet struct {
	names   []string
	vectors [][]float32
}

// LabelRegistry — неизменяемый реестр пред-вычисленных эмбеддингов меток
// (категории, цвета, паттерны, визуально различимые бренды). Строится
// один раз при старте процесса и внедряется в классификатор и резолвер
// брендов; пересчёт на каждый запрос был бы расточителен.
type LabelRegistry struct {
	categories labelSet
	colors     labelSet
	patterns   labelSet
	brands     labelSet
}

// NewLabelRegistry векторизует фразы всех таксономий через провайдера.
func NewLabelRegistry(ctx context.Context, embedder TextEmbedder) (*LabelRegistry, error) {
	const op = "LabelRegistry.New"

	categories, err := buildLabelSet(ctx, embedder, categoryNames, categoryPhrases)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	colors, err := buildLabelSet(ctx, embedder, colorNames, colorPhrases)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	patterns, err := buildLabelSet(ctx, embedder, patternNames, patternPhrases)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	brands, err := buildLabelSet(ctx, embedder, distinctiveBrandNames, distinctiveBrandPhrases)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &LabelRegistry{
		categories: categories,
		colors:     colors,
		patterns:   patterns,
		brands:     brands,
	}, nil
}

// NewLabelRegistryFromVectors собирает реестр из готовых векторов.
// Используется в тестах, где провайдер эмбеддингов недоступен.
func NewLabelRegistryFromVectors(categories, colors, patterns, brands [][]float32) *LabelRegistry {
	return &LabelRegistry{
		categories: labelSet{names: categoryNames, vectors: categories},
		colors:     labelSet{names: colorNames, vectors: colors},
		patterns:   labelSet{names: patternNames, vectors: patterns},
		brands:     labelSet{names: distinctiveBrandNames, vectors: brands},
	}
}

func buildLabelSet(ctx context.Context, embedder TextEmbedder, names, phrases []string) (labelSet, error) {
	vectors, err := embedder.EmbedTexts(ctx, phrases)
	if err != nil {
		return labelSet{}, err
	}

	if len(vectors) != len(names) {
		return labelSet{}, e.ErrVectorDimension
	}

	return labelSet{names: names, vectors: vectors}, nil
}
