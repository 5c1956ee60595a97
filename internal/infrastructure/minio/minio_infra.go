package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/findthisfit/go-backend/internal/cfg"
	"github.com/findthisfit/go-backend/internal/domain"
	"github.com/findthisfit/go-backend/internal/infrastructure"
	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/findthisfit/go-backend/pkg/jitter"
	"github.com/findthisfit/go-backend/pkg/logger"

	"github.com/google/uuid"
)

const (
	cleanupAttempts   = 3
	cleanupTimeout    = 30 * time.Second
	cleanupBackoff    = time.Second
	cleanupBackoffMax = 8 * time.Second
)

// MinioInfrastructure управляет загрузкой и очисткой изображений в MinIO.
type MinioInfrastructure struct {
	minioRepo   usecase.ImageRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMinioInfrastructure(minioRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		minioRepo:   minioRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		wg:          sync.WaitGroup{},
	}
}

// UploadImage загружает изображение позиции в MinIO и возвращает ключ
// объекта. Ключ включает заголовок позиции и уникальный идентификатор.
func (m *MinioInfrastructure) UploadImage(ctx context.Context, req *usecase.UploadImageReq) (string, error) {
	const op = "MinioInfrastructure.UploadImage"

	image := req.Image

	imageID := uuid.NewString()
	ext, err := infrastructure.GetExtensionFromMIME(image.MimeType)
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, err))
	}

	objKey := fmt.Sprintf("%s/%s.%s", sanitizeKeyPart(req.Title), imageID, ext)
	newImage := domain.NewImage(imageID, m.cfg.BucketName, objKey, image.Data, &image.Size, &image.MimeType)

	key, err := m.minioRepo.Upload(ctx, newImage)
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("upload %s failed: %w", image.Name, err))
	}

	return key, nil
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done() // сигнализируем завершение компенсации
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: Cleaning up uploaded keys", op)

	// Создаём контекст с таймаутом на основе shutdownCtx
	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			if err := m.minioRepo.Delete(ctx, key); err == nil {
				break // Успешно удалено
			}

			// Проверяем, не отменён ли контекст
			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < cleanupAttempts-1 {
				sleepTime := jitter.ExponentialBackoff(cleanupBackoff, cleanupBackoffMax, attempt, jitter.DefaultJitter)

				select {
				case <-time.After(sleepTime):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}

// sanitizeKeyPart приводит заголовок к безопасному префиксу ключа S3.
func sanitizeKeyPart(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '-', r == '_':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "item"
	}

	return string(out)
}
