package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"599.99", 59999},
		{"600", 60000},
		{"0", 0},
		{"0.5", 50},
		{"45.10", 4510},
		{"1000000", 100000000},
	}
	for _, tc := range cases {
		got, err := parsePriceToCents(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParsePriceToCentsRejectsInvalid(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"abc", e.ErrInvalidPrice},
		{"-10", e.ErrInvalidPrice},
		{"1000000.01", e.ErrInvalidPrice},
		{"9.999", e.ErrPricePrecision},
	}
	for _, tc := range cases {
		_, err := parsePriceToCents(tc.in)
		assert.ErrorIs(t, err, tc.want, tc.in)
	}

	_, err := parsePriceToCents("  ")
	assert.Error(t, err)
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs("1, 2,3")

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestParseIDsRejectsGarbage(t *testing.T) {
	_, err := parseIDs("")
	assert.ErrorIs(t, err, e.ErrNoItems)

	_, err = parseIDs("1,two,3")
	assert.ErrorIs(t, err, e.ErrNoItems)
}

func TestDecodeBase64Image(t *testing.T) {
	// "jpeg bytes" в base64
	data, err := decodeBase64Image("anBlZyBieXRlcw==")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)

	data, err = decodeBase64Image("data:image/jpeg;base64,anBlZyBieXRlcw==")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestDecodeBase64ImageEmpty(t *testing.T) {
	data, err := decodeBase64Image("")

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestDecodeBase64ImageInvalid(t *testing.T) {
	_, err := decodeBase64Image("not base64 at all!!!")

	assert.ErrorIs(t, err, e.ErrInvalidBase64)
}

func TestToHTTPResponse(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{e.ErrImageOrTextRequired, http.StatusBadRequest},
		{e.ErrEmptyQuery, http.StatusBadRequest},
		{e.ErrImageRequired, http.StatusBadRequest},
		{e.ErrTitleRequired, http.StatusBadRequest},
		{e.ErrInvalidPrice, http.StatusBadRequest},
		{e.ErrFileTooLarge, http.StatusBadRequest},
		{e.ErrTooManyImages, http.StatusBadRequest},
		{e.ErrExpectedJSON, http.StatusBadRequest},
		{e.ErrNoItems, http.StatusBadRequest},
		{e.ErrIndexUnavailable, http.StatusServiceUnavailable},
		{errors.New("pool exhausted"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, _ := ToHTTPResponse(tc.err)
		assert.Equal(t, tc.code, code, tc.err)
	}
}

func TestToHTTPResponseUnwrapsErrors(t *testing.T) {
	wrapped := e.Wrap("SearchUseCase.SearchByText", e.Wrap("validation", e.ErrEmptyQuery))

	code, msg := ToHTTPResponse(wrapped)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, e.ErrEmptyQuery.Error(), msg)
}

func TestToHTTPResponseHidesInternalDetails(t *testing.T) {
	code, msg := ToHTTPResponse(errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, e.ErrInternalServerError.Error(), msg)
}
