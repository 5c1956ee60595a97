package embedding

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/findthisfit/go-backend/internal/cfg"
	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/findthisfit/go-backend/pkg/jitter"
	"github.com/findthisfit/go-backend/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// CLIPService клиент для взаимодействия с внешним CLIP-сервисом
// эмбеддингов. Изображение и текст проецируются в одно векторное
// пространство, поэтому один эндпоинт обслуживает все режимы.
type CLIPService struct {
	httpClient    *http.Client
	baseURL       string
	maxConcurrent int
	maxRetries    int
	logger        logger.Logger
}

func NewCLIPService(cfg *cfg.EmbeddingCfg, logger logger.Logger) *CLIPService {
	return &CLIPService{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:       cfg.ClipURL,
		maxConcurrent: cfg.MaxConcurrent,
		maxRetries:    cfg.MaxRetries,
		logger:        logger,
	}
}

type embedRequest struct {
	ImageBase64 string `json:"image_base64,omitempty"`
	Text        string `json:"text,omitempty"`
}

type embedResponse struct {
	Vector       []float32 `json:"vector"`
	ModelVersion string    `json:"model_version"`
}

// Embed выполняет векторизацию изображения и/или текста с retry-логикой
// и экспоненциальной задержкой.
func (s *CLIPService) Embed(ctx context.Context, imageBytes []byte, text string) (*usecase.EmbedRes, error) {
	const (
		op         = "CLIPService.Embed"
		baseJitter = 1 * time.Second
		maxJitter  = 30 * time.Second
	)

	if len(imageBytes) == 0 && text == "" {
		return nil, e.Wrap(op, e.ErrImageOrTextRequired)
	}

	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		res, err := s.embedOnce(ctx, imageBytes, text)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if attempt == s.maxRetries-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(
			baseJitter,
			maxJitter,
			attempt,
			jitter.DefaultJitter,
		)

		s.logger.Warnf("embedding failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", s.maxRetries, lastErr))
}

// EmbedTexts векторизует набор текстов параллельно с ограничением
// конкурентности, сохраняя порядок входа.
func (s *CLIPService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	const op = "CLIPService.EmbedTexts"

	vectors := make([][]float32, len(texts))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i, text := range texts {
		g.Go(func() error {
			res, err := s.Embed(gCtx, nil, text)
			if err != nil {
				return err
			}

			vectors[i] = res.Vector
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, e.Wrap(op, err)
	}

	return vectors, nil
}

// embedOnce отправляет один запрос на векторизацию.
func (s *CLIPService) embedOnce(ctx context.Context, imageBytes []byte, text string) (*usecase.EmbedRes, error) {
	reqBody := embedRequest{Text: text}
	if len(imageBytes) > 0 {
		reqBody.ImageBase64 = base64.StdEncoding.EncodeToString(imageBytes)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/embed", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service returned status %d", resp.StatusCode)
	}

	var body embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if len(body.Vector) == 0 {
		return nil, e.ErrEmptyVector
	}

	return usecase.NewEmbedRes(body.Vector, body.ModelVersion), nil
}
