package embedding

import (
	"context"
	"fmt"

	"github.com/findthisfit/go-backend/internal/cfg"
	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/findthisfit/go-backend/pkg/e"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder векторизует тексты через OpenAI Embeddings API.
// Изображения этот провайдер не поддерживает: для мультимодальных
// запросов используется CLIP-сервис.
type OpenAIEmbedder struct {
	client *openai.Client
	cfg    *cfg.OpenAICfg
}

func NewOpenAIEmbedder(cfg *cfg.OpenAICfg) *OpenAIEmbedder {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

// Embed векторизует текст запроса.
func (o *OpenAIEmbedder) Embed(ctx context.Context, imageBytes []byte, text string) (*usecase.EmbedRes, error) {
	const op = "OpenAIEmbedder.Embed"

	if len(imageBytes) > 0 {
		return nil, e.Wrap(op, e.ErrImageUnsupported)
	}
	if text == "" {
		return nil, e.Wrap(op, e.ErrImageOrTextRequired)
	}

	vectors, err := o.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return usecase.NewEmbedRes(vectors[0], o.cfg.EmbeddingModel), nil
}

// EmbedTexts векторизует набор текстов одним запросом, сохраняя порядок.
func (o *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	const op = "OpenAIEmbedder.EmbedTexts"

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      texts,
		Model:      openai.EmbeddingModel(o.cfg.EmbeddingModel),
		Dimensions: o.cfg.Dimensions,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(resp.Data) != len(texts) {
		return nil, e.Wrap(op, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data)))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		vectors[item.Index] = item.Embedding
	}

	return vectors, nil
}
