package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/findthisfit/go-backend/internal/analysis"
	"github.com/findthisfit/go-backend/internal/domain"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Метки тестового реестра ортонормированы, каждой отведена своя
// координата: близость единичного запроса к метке равна компоненте.
const (
	testDim = 73

	catOffset   = 0  // 33 категории
	colorOffset = 33 // 13 цветов
	patOffset   = 46 // 12 паттернов
	brandOffset = 58 // 14 брендов

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

func testRegistry() *analysis.LabelRegistry {
	return analysis.NewLabelRegistryFromVectors(
		basisVectors(catOffset, 33),
		basisVectors(colorOffset, 13),
		basisVectors(patOffset, 12),
		basisVectors(brandOffset, 14),
	)
}

// hoodieVector классифицируется как чёрное однотонное худи.
func hoodieVector() []float32 {
	v := make([]float32, testDim)
	v[catOffset+6] = 0.8 // hoodie
	v[colorOffset] = 0.3 // Black
	v[patOffset] = 0.5   // Solid
	v[slackDim] = float32(math.Sqrt(1 - 0.8*0.8 - 0.3*0.3 - 0.5*0.5))

	return v
}

type fakeEmbedder struct {
	res *EmbedRes
	err error

	gotImage []byte
	gotText  string
}

func (f *fakeEmbedder) Embed(_ context.Context, imageBytes []byte, text string) (*EmbedRes, error) {
	f.gotImage = imageBytes
	f.gotText = text
	if f.err != nil {
		return nil, f.err
	}

	return f.res, nil
}

type fakeCatalog struct {
	neighbors []domain.Neighbor
	err       error

	gotVector []float32
	gotLimit  int
}

func (f *fakeCatalog) SearchNearest(_ context.Context, vector []float32, limit int) ([]domain.Neighbor, error) {
	f.gotVector = vector
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}

	return f.neighbors, nil
}

type fakeVision struct {
	read    *VisionRead
	readErr error

	description string
	descErr     error
	gotDescribe *DescribeReq
}

func (f *fakeVision) ReadBrandAndColor(_ context.Context, _ []byte) (*VisionRead, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}

	return f.read, nil
}

func (f *fakeVision) Describe(_ context.Context, req *DescribeReq) (string, error) {
	f.gotDescribe = req
	if f.descErr != nil {
		return "", f.descErr
	}

	return f.description, nil
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)        {}
func (nopLogger) Warnf(string, ...any)        {}
func (nopLogger) Errorf(error, string, ...any) {}

func newSearchUC(embedder *fakeEmbedder, catalog *fakeCatalog, vision *fakeVision) *SearchUseCase {
	reg := testRegistry()

	return NewSearchUC(
		embedder,
		catalog,
		analysis.NewClassifier(reg),
		analysis.NewBrandResolver(reg),
		analysis.NewAggregator(),
		vision,
		nopLogger{},
	)
}

func centsPtr(v int64) *int64 { return &v }

func TestSearchByImage(t *testing.T) {
	embedder := &fakeEmbedder{res: NewEmbedRes(hoodieVector(), "clip-vit-b32")}
	catalog := &fakeCatalog{neighbors: []domain.Neighbor{
		{
			Item: domain.NeighborItem{
				ID:          1,
				Title:       "Nike Hoodie",
				PriceCents:  centsPtr(4599),
				ImageURL:    "https://img.example/1.jpg",
				RedirectURL: "https://shop.example/1",
				Source:      "grailed",
			},
			Distance: 0.12,
		},
		{
			Item:     domain.NeighborItem{ID: 2, Title: "Plain Hoodie"},
			Distance: 0.3,
		},
	}}

	uc := newSearchUC(embedder, catalog, &fakeVision{})

	res, err := uc.SearchByImage(context.Background(), &SearchByImageReq{ImageBytes: []byte("jpeg")})

	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, searchLimit, catalog.gotLimit)
	assert.Equal(t, embedder.res.Vector, catalog.gotVector)

	first := res.Items[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Nike Hoodie", first.Title)
	require.NotNil(t, first.Price)
	assert.InDelta(t, 45.99, *first.Price, 1e-9)
	assert.Equal(t, 0.12, first.Distance)
	assert.Equal(t, "grailed", first.Source)

	assert.Nil(t, res.Items[1].Price)
}

func TestSearchByImageRequiresImage(t *testing.T) {
	uc := newSearchUC(&fakeEmbedder{}, &fakeCatalog{}, &fakeVision{})

	_, err := uc.SearchByImage(context.Background(), &SearchByImageReq{})

	assert.ErrorIs(t, err, e.ErrImageRequired)
}

func TestSearchByTextRequiresQuery(t *testing.T) {
	uc := newSearchUC(&fakeEmbedder{}, &fakeCatalog{}, &fakeVision{})

	_, err := uc.SearchByText(context.Background(), &SearchByTextReq{Query: "   "})

	assert.ErrorIs(t, err, e.ErrEmptyQuery)
}

func TestSearchByTextPassesQueryToEmbedder(t *testing.T) {
	embedder := &fakeEmbedder{res: NewEmbedRes(hoodieVector(), "clip-vit-b32")}
	uc := newSearchUC(embedder, &fakeCatalog{}, &fakeVision{})

	res, err := uc.SearchByText(context.Background(), &SearchByTextReq{Query: " black hoodie "})

	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, "black hoodie", embedder.gotText)
	assert.Nil(t, embedder.gotImage)
}

func TestSearchCombinedRequiresImageOrText(t *testing.T) {
	uc := newSearchUC(&fakeEmbedder{}, &fakeCatalog{}, &fakeVision{})

	_, err := uc.SearchCombined(context.Background(), &SearchCombinedReq{Query: " "})

	assert.ErrorIs(t, err, e.ErrImageOrTextRequired)
}

func TestSearchEmbedderErrorPropagates(t *testing.T) {
	uc := newSearchUC(&fakeEmbedder{err: e.ErrEmbeddingFailure}, &fakeCatalog{}, &fakeVision{})

	_, err := uc.SearchByImage(context.Background(), &SearchByImageReq{ImageBytes: []byte("jpeg")})

	assert.ErrorIs(t, err, e.ErrEmbeddingFailure)
}

func TestSearchIndexErrorPropagates(t *testing.T) {
	embedder := &fakeEmbedder{res: NewEmbedRes(hoodieVector(), "clip-vit-b32")}
	uc := newSearchUC(embedder, &fakeCatalog{err: e.ErrIndexUnavailable}, &fakeVision{})

	_, err := uc.SearchByImage(context.Background(), &SearchByImageReq{ImageBytes: []byte("jpeg")})

	assert.ErrorIs(t, err, e.ErrIndexUnavailable)
}

func TestAnalyzeImage(t *testing.T) {
	embedder := &fakeEmbedder{res: NewEmbedRes(hoodieVector(), "clip-vit-b32")}
	catalog := &fakeCatalog{neighbors: []domain.Neighbor{
		{
			Item:     domain.NeighborItem{Title: "nike hoodie m", Description: "cotton fleece", PriceCents: centsPtr(5000)},
			Distance: 0.2,
		},
		{
			Item:     domain.NeighborItem{Title: "nike hoodie m", PriceCents: centsPtr(6000)},
			Distance: 0.3,
		},
		{
			Item:     domain.NeighborItem{Title: "nike hoodie m"},
			Distance: 0.4,
		},
	}}

	uc := newSearchUC(embedder, catalog, &fakeVision{})

	got, err := uc.AnalyzeImage(context.Background(), &AnalyzeImageReq{ImageBytes: []byte("jpeg")})

	require.NoError(t, err)
	assert.Equal(t, analyzeLimit, catalog.gotLimit)

	assert.Equal(t, "Black Hoodie", got.DetectedItem)
	assert.Equal(t, "Nike", got.LikelyBrand)
	assert.Equal(t, "outerwear", got.Category)
	assert.Equal(t, "hoodie", got.SpecificCategory)
	assert.Equal(t, "M", got.EstimatedSize)
	assert.Equal(t, "excellent", got.EstimatedCondition)
	assert.Equal(t, "Nike, Black Hoodie, Size M, Excellent.", got.Description)
	assert.Equal(t, []string{"Black"}, got.Colors)
	assert.Equal(t, "Solid", got.Pattern)
	assert.Equal(t, []string{"Cotton"}, got.Materials)
	require.NotNil(t, got.EstimatedPrice)
	assert.InDelta(t, 55, *got.EstimatedPrice, 1e-9)
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)

	assert.InDelta(t, 0.8, got.ConfidenceScores.Category, 1e-9)
	assert.InDelta(t, 0.84, got.ConfidenceScores.Brand, 1e-9)
	require.Len(t, got.ConfidenceScores.Colors, 1)
	assert.InDelta(t, 0.3, got.ConfidenceScores.Colors[0], 1e-9)
}

func TestAnalyzeImageVisionColorOverride(t *testing.T) {
	embedder := &fakeEmbedder{res: NewEmbedRes(hoodieVector(), "clip-vit-b32")}
	catalog := &fakeCatalog{neighbors: []domain.Neighbor{
		{Item: domain.NeighborItem{Title: "plain hoodie"}, Distance: 0.2},
	}}
	vision := &fakeVision{read: &VisionRead{Color: "burgundy"}}

	uc := newSearchUC(embedder, catalog, vision)

	got, err := uc.AnalyzeImage(context.Background(), &AnalyzeImageReq{ImageBytes: []byte("jpeg")})

	require.NoError(t, err)
	assert.Equal(t, []string{"Burgundy"}, got.Colors)
	assert.Equal(t, []float64{visionColorConfidence}, got.ConfidenceScores.Colors)
	assert.Equal(t, "Burgundy Hoodie", got.DetectedItem)
}

func TestAnalyzeImageVisionBrandWinsOverText(t *testing.T) {
	embedder := &fakeEmbedder{res: NewEmbedRes(hoodieVector(), "clip-vit-b32")}
	catalog := &fakeCatalog{neighbors: []domain.Neighbor{
		{Item: domain.NeighborItem{Title: "nike hoodie"}, Distance: 0.2},
		{Item: domain.NeighborItem{Title: "nike hoodie"}, Distance: 0.3},
		{Item: domain.NeighborItem{Title: "nike hoodie"}, Distance: 0.4},
	}}
	vision := &fakeVision{read: &VisionRead{Brand: "carhartt"}}

	uc := newSearchUC(embedder, catalog, vision)

	got, err := uc.AnalyzeImage(context.Background(), &AnalyzeImageReq{ImageBytes: []byte("jpeg")})

	require.NoError(t, err)
	assert.Equal(t, "Carhartt", got.LikelyBrand)
	assert.Equal(t, 0.95, got.ConfidenceScores.Brand)
}

func TestAnalyzeImageVisionFailureIsNotFatal(t *testing.T) {
	embedder := &fakeEmbedder{res: NewEmbedRes(hoodieVector(), "clip-vit-b32")}
	catalog := &fakeCatalog{neighbors: []domain.Neighbor{
		{Item: domain.NeighborItem{Title: "plain hoodie"}, Distance: 0.25},
	}}
	vision := &fakeVision{readErr: errors.New("model overloaded")}

	uc := newSearchUC(embedder, catalog, vision)

	got, err := uc.AnalyzeImage(context.Background(), &AnalyzeImageReq{ImageBytes: []byte("jpeg")})

	require.NoError(t, err)
	assert.Equal(t, "", got.LikelyBrand)
	assert.Equal(t, []string{"Black"}, got.Colors)
}

func TestAnalyzeImageNoNeighborsDefaultResult(t *testing.T) {
	embedder := &fakeEmbedder{res: NewEmbedRes(hoodieVector(), "clip-vit-b32")}
	uc := newSearchUC(embedder, &fakeCatalog{}, &fakeVision{})

	got, err := uc.AnalyzeImage(context.Background(), &AnalyzeImageReq{ImageBytes: []byte("jpeg")})

	require.NoError(t, err)
	assert.Equal(t, "Black Hoodie", got.DetectedItem)
	assert.Equal(t, "", got.LikelyBrand)
	assert.Equal(t, "outerwear", got.Category)
	assert.Equal(t, "M", got.EstimatedSize)
	assert.Equal(t, "excellent", got.EstimatedCondition)
	assert.Equal(t, "Black Hoodie in excellent condition", got.Description)
	assert.Nil(t, got.EstimatedPrice)
	assert.Empty(t, got.Materials)
	assert.Equal(t, 0.0, got.Confidence)
	assert.Equal(t, 0.0, got.ConfidenceScores.Brand)
}

func TestAnalyzeImageRequiresImage(t *testing.T) {
	uc := newSearchUC(&fakeEmbedder{}, &fakeCatalog{}, &fakeVision{})

	_, err := uc.AnalyzeImage(context.Background(), &AnalyzeImageReq{})

	assert.ErrorIs(t, err, e.ErrImageRequired)
}

func TestGenerateDescriptionVision(t *testing.T) {
	vision := &fakeVision{description: "Nike hoodie in great shape, barely worn."}
	uc := newSearchUC(&fakeEmbedder{}, &fakeCatalog{}, vision)

	got, err := uc.GenerateDescription(context.Background(), &GenerateDescriptionReq{
		ImageBytes: []byte("jpeg"),
		Category:   "hoodie",
		Brand:      "Nike",
		Colors:     []string{"Black"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Nike hoodie in great shape, barely worn.", got.Description)
	assert.Equal(t, "gpt4_vision", got.Method)
	assert.Equal(t, 0.95, got.Confidence)

	require.NotNil(t, vision.gotDescribe)
	assert.Equal(t, "Black from Nike hoodie", vision.gotDescribe.Context)
	assert.Equal(t, "Good", vision.gotDescribe.Condition)
}

func TestGenerateDescriptionTemplateFallback(t *testing.T) {
	vision := &fakeVision{descErr: errors.New("rate limited")}
	uc := newSearchUC(&fakeEmbedder{}, &fakeCatalog{}, vision)

	got, err := uc.GenerateDescription(context.Background(), &GenerateDescriptionReq{
		ImageBytes: []byte("jpeg"),
		Category:   "hoodie",
		Brand:      "Nike",
		Colors:     []string{"Black"},
		Size:       "M",
		Materials:  []string{"Cotton"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Nike Black hoodie, Size M, Good condition, Cotton material.", got.Description)
	assert.Equal(t, "template", got.Method)
	assert.Equal(t, 0.75, got.Confidence)
}

func TestGenerateDescriptionTemplateDefaults(t *testing.T) {
	vision := &fakeVision{descErr: errors.New("rate limited")}
	uc := newSearchUC(&fakeEmbedder{}, &fakeCatalog{}, vision)

	got, err := uc.GenerateDescription(context.Background(), &GenerateDescriptionReq{
		ImageBytes: []byte("jpeg"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Clothing Item, Good condition.", got.Description)
}

func TestGenerateDescriptionRequiresImage(t *testing.T) {
	uc := newSearchUC(&fakeEmbedder{}, &fakeCatalog{}, &fakeVision{})

	_, err := uc.GenerateDescription(context.Background(), &GenerateDescriptionReq{})

	assert.ErrorIs(t, err, e.ErrImageRequired)
}
