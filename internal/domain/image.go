package domain

// Image описывает изображение, которое хранится в S3
type Image struct {
	ID        string // uuid
	Bucket    string
	ObjectKey string
	Bytes     []byte
	// Передайте значение -1 в Size, если размер потока неизвестен.
	Size     *int64
	MimeType *string // Example: "image/jpeg"
}

func NewImage(id string, bucket string, objectKey string, data []byte, size *int64, mimeType *string) *Image {
	return &Image{
		ID:        id,
		Bucket:    bucket,
		ObjectKey: objectKey,
		Bytes:     data,
		Size:      size,
		MimeType:  mimeType,
	}
}
