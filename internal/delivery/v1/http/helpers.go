package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrImageOrTextRequired):
		return http.StatusBadRequest, e.ErrImageOrTextRequired.Error()
	case errors.Is(err, e.ErrInvalidBase64):
		return http.StatusBadRequest, e.ErrInvalidBase64.Error()
	case errors.Is(err, e.ErrEmptyQuery):
		return http.StatusBadRequest, e.ErrEmptyQuery.Error()
	case errors.Is(err, e.ErrImageRequired):
		return http.StatusBadRequest, e.ErrImageRequired.Error()
	case errors.Is(err, e.ErrTitleRequired):
		return http.StatusBadRequest, e.ErrTitleRequired.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusBadRequest, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrTooManyImages):
		return http.StatusBadRequest, e.ErrTooManyImages.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusBadRequest, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrExpectedJSON):
		return http.StatusBadRequest, e.ErrExpectedJSON.Error()
	case errors.Is(err, e.ErrNoItems):
		return http.StatusBadRequest, e.ErrNoItems.Error()
	case errors.Is(err, e.ErrIndexUnavailable):
		return http.StatusServiceUnavailable, e.ErrIndexUnavailable.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON читает JSON-тело запроса в dst, требуя корректный Content-Type.
func decodeJSON(r *http.Request, dst interface{}) error {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedJSON)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedJSON)
	}

	return nil
}

// decodeBase64Image декодирует изображение из base64, отбрасывая data-URI
// префикс вида "data:image/jpeg;base64,".
func decodeBase64Image(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}

	if idx := strings.Index(encoded, ","); idx != -1 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidBase64)
	}

	return data, nil
}

// parseIDs разбирает список идентификаторов вида "1,2,3".
func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, e.ErrNoItems
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, e.Wrap(part, e.ErrNoItems)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// parsePriceToCents converts a string like "599.99" or "600" to int64 cents.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds reasonable limit
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, errors.New("price is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	// Reject negative
	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	// Enforce max value (1M dollars)
	maxPrice := decimal.NewFromInt(1_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	// Check decimal places
	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	// Convert to cents: multiply by 100 and round
	cents := d.Mul(decimal.NewFromInt(100)).Round(0)

	return cents.IntPart(), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}

// parseItemImage читает единственное изображение позиции из multipart-формы.
func parseItemImage(fhs []*multipart.FileHeader) (usecase.ItemImage, error) {
	const maxFileSize = 15 << 20

	if len(fhs) == 0 {
		return usecase.ItemImage{}, e.ErrImageRequired
	}
	if len(fhs) > 1 {
		return usecase.ItemImage{}, e.ErrTooManyImages
	}

	fh := fhs[0]
	data, mimeType, err := readFile(fh, maxFileSize)
	if err != nil {
		return usecase.ItemImage{}, err
	}

	return usecase.ItemImage{
		Data:     data,
		MimeType: mimeType,
		Size:     int64(len(data)),
		Name:     fh.Filename,
	}, nil
}
