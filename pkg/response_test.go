package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	req := require.New(t)

	cases := map[error]int{
		ErrNotFound:         http.StatusNotFound,
		ErrUnauthorized:     http.StatusUnauthorized,
		ErrForbidden:        http.StatusForbidden,
		ErrAlreadyExists:    http.StatusConflict,
		ErrBadRequest:       http.StatusBadRequest,
		ErrPayloadTooLarge:  http.StatusRequestEntityTooLarge,
		ErrUnsupportedMedia: http.StatusUnsupportedMediaType,
		errors.New("boom"):  http.StatusInternalServerError,
	}
	for err, want := range cases {
		req.Equal(want, StatusFor(fmt.Errorf("%w: wrapped", err)), err.Error())
	}
}

func TestError(t *testing.T) {
	t.Run("should keep the message of client errors", func(t *testing.T) {
		req := require.New(t)
		w := httptest.NewRecorder()
		Error(w, fmt.Errorf("%w: image too large (max 5 bytes)", ErrPayloadTooLarge))

		req.Equal(http.StatusRequestEntityTooLarge, w.Code)
		var resp APIResponse
		req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		req.False(resp.Success)
		req.Equal("payload too large: image too large (max 5 bytes)", resp.Error)
	})

	t.Run("should hide internal error details", func(t *testing.T) {
		req := require.New(t)
		w := httptest.NewRecorder()
		Error(w, errors.New("sqlite: disk I/O error at /var/data"))

		req.Equal(http.StatusInternalServerError, w.Code)
		var resp APIResponse
		req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		req.Equal(ErrInternal.Error(), resp.Error)
	})
}
