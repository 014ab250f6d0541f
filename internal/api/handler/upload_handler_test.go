package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

type stubImageStore struct {
	saveFn func(ctx context.Context, originalName string, r io.Reader) (string, error)
}

func (s *stubImageStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	return s.saveFn(ctx, originalName, r)
}

func multipartContext(t *testing.T, e *echo.Echo, field, filename string, content []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUploadHandler_Upload(t *testing.T) {
	e := newTestEcho()
	stub := &stubImageStore{
		saveFn: func(ctx context.Context, originalName string, r io.Reader) (string, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "ring.png", originalName)
			assert.Equal(t, "img-bytes", string(data))
			return "/uploads/image-abc.png", nil
		},
	}
	handler := NewUploadHandler(stub)

	c, rec := multipartContext(t, e, "image", "ring.png", []byte("img-bytes"))
	require.NoError(t, handler.Upload(c))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/uploads/image-abc.png", resp["imageUrl"])
}

func TestUploadHandler_MissingFile(t *testing.T) {
	e := newTestEcho()
	handler := NewUploadHandler(&stubImageStore{})

	c, _ := multipartContext(t, e, "", "", nil)
	assert.ErrorIs(t, handler.Upload(c), domain.ErrValidation)
}

func TestUploadHandler_StoreRejects(t *testing.T) {
	e := newTestEcho()
	stub := &stubImageStore{
		saveFn: func(ctx context.Context, originalName string, r io.Reader) (string, error) {
			return "", domain.Validationf("only jpeg, jpg, png and webp images are allowed")
		},
	}
	handler := NewUploadHandler(stub)

	c, _ := multipartContext(t, e, "image", "notes.txt", []byte("hello"))
	assert.ErrorIs(t, handler.Upload(c), domain.ErrValidation)
}
