package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки векторного поиска и эмбеддингов.
	// ErrIndexUnavailable означает недоступность Qdrant: пустой результат
	// поиска и ошибка индекса — разные исходы, подменять одно другим нельзя.
	ErrEmbeddingFailure = fmt.Errorf("embedding provider failure")
	ErrIndexUnavailable = fmt.Errorf("vector index unavailable")
	ErrEmptyVector      = fmt.Errorf("embedding vector is empty")
	ErrVectorDimension  = fmt.Errorf("unexpected embedding dimension")
	ErrImageUnsupported = fmt.Errorf("provider does not support image embeddings")

	// 400 Bad Request
	ErrImageOrTextRequired  = fmt.Errorf("at least one of image or text is required")
	ErrInvalidBase64        = fmt.Errorf("invalid base64 image data")
	ErrEmptyQuery           = fmt.Errorf("query text is required")
	ErrImageRequired        = fmt.Errorf("image is required")
	ErrTitleRequired        = fmt.Errorf("title is required")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrTooManyImages        = fmt.Errorf("exactly one image is expected")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrExpectedJSON         = fmt.Errorf("expected application/json body")
	ErrNoItems              = fmt.Errorf("no item ids provided")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
