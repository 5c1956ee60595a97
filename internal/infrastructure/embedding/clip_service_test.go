package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/findthisfit/go-backend/internal/cfg"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func newTestService(url string, maxRetries int) *CLIPService {
	return NewCLIPService(&cfg.EmbeddingCfg{
		Provider:      cfg.EmbeddingProviderCLIP,
		ClipURL:       url,
		MaxConcurrent: 4,
		MaxRetries:    maxRetries,
		Timeout:       5 * time.Second,
	}, nopLogger{})
}

func TestEmbed(t *testing.T) {
	var gotReq embedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/embed", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(embedResponse{
			Vector:       []float32{0.1, 0.2, 0.3},
			ModelVersion: "clip-vit-b32",
		})
	}))
	defer srv.Close()

	s := newTestService(srv.URL, 1)

	res, err := s.Embed(context.Background(), []byte{0xFF, 0xD8}, "black hoodie")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, res.Vector)
	assert.Equal(t, "clip-vit-b32", res.ModelVersion)
	assert.Equal(t, "black hoodie", gotReq.Text)
	assert.NotEmpty(t, gotReq.ImageBase64)
}

func TestEmbedRequiresImageOrText(t *testing.T) {
	s := newTestService("http://unreachable.invalid", 1)

	_, err := s.Embed(context.Background(), nil, "")

	assert.ErrorIs(t, err, e.ErrImageOrTextRequired)
}

func TestEmbedRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(embedResponse{Vector: []float32{0.5}, ModelVersion: "clip-vit-b32"})
	}))
	defer srv.Close()

	s := newTestService(srv.URL, 2)

	res, err := s.Embed(context.Background(), nil, "denim jacket")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, res.Vector)
	assert.Equal(t, int32(2), calls.Load())
}

func TestEmbedFailsAfterRetriesExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := newTestService(srv.URL, 1)

	_, err := s.Embed(context.Background(), nil, "denim jacket")

	assert.ErrorContains(t, err, "all 1 attempts failed")
}

func TestEmbedEmptyVectorRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{ModelVersion: "clip-vit-b32"})
	}))
	defer srv.Close()

	s := newTestService(srv.URL, 1)

	_, err := s.Embed(context.Background(), nil, "denim jacket")

	assert.ErrorIs(t, err, e.ErrEmptyVector)
}

func TestEmbedTextsPreservesOrder(t *testing.T) {
	// Вектор кодирует длину текста: порядок результата проверяем по ней.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		json.NewEncoder(w).Encode(embedResponse{
			Vector:       []float32{float32(len(req.Text))},
			ModelVersion: "clip-vit-b32",
		})
	}))
	defer srv.Close()

	s := newTestService(srv.URL, 1)

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vectors, err := s.EmbedTexts(context.Background(), texts)

	require.NoError(t, err)
	require.Len(t, vectors, len(texts))
	for i, text := range texts {
		assert.Equal(t, []float32{float32(len(text))}, vectors[i])
	}
}
