package infrastructure

import (
	"testing"

	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExtensionFromMIME(t *testing.T) {
	cases := map[string]string{
		"image/jpeg": "jpg",
		"image/jpg":  "jpg",
		"image/png":  "png",
		"image/webp": "webp",
	}
	for mime, want := range cases {
		got, err := GetExtensionFromMIME(mime)
		require.NoError(t, err, mime)
		assert.Equal(t, want, got, mime)
	}
}

func TestGetExtensionFromMIMEUnsupported(t *testing.T) {
	_, err := GetExtensionFromMIME("application/pdf")

	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
}
