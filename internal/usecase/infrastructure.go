package usecase

import "context"

// EmbeddingProvider — внешний провайдер эмбеддингов. Хотя бы один из
// аргументов (изображение, текст) обязан быть непустым; провайдер может
// быть удалённым, вызов не должен считаться дешёвым.
type EmbeddingProvider interface {
	Embed(ctx context.Context, imageBytes []byte, text string) (*EmbedRes, error)
}

// VisionInfra — необязательный vision-коллаборатор. Ошибки его вызовов
// не фатальны: отсутствие ответа — нормальный исход, сигнал просто
// считается отсутствующим.
type VisionInfra interface {
	ReadBrandAndColor(ctx context.Context, imageBytes []byte) (*VisionRead, error)
	Describe(ctx context.Context, req *DescribeReq) (string, error)
}

// ImagesInfra — загрузка изображений с фоновой компенсирующей очисткой.
type ImagesInfra interface {
	UploadImage(ctx context.Context, req *UploadImageReq) (string, error)
	CleanupImages(keys []string)
	WaitForCleanup(ctx context.Context) error
}
