package upload

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestDiskStore_SavePNG(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, 1024)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "Ring.PNG", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/image-"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, PublicPrefix)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestDiskStore_UniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 1024)
	require.NoError(t, err)

	a, err := store.Save(context.Background(), "a.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	b, err := store.Save(context.Background(), "a.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDiskStore_RejectsExtension(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 1024)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "ring.gif", bytes.NewReader(pngHeader))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestDiskStore_RejectsSpoofedContent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, 1024)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "ring.png", strings.NewReader("<html><body>not an image</body></html>"))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskStore_RejectsEmpty(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 1024)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "ring.jpg", bytes.NewReader(nil))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestDiskStore_EnforcesSizeCap(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, int64(len(pngHeader)+10))
	require.NoError(t, err)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	_, err = store.Save(context.Background(), "ring.png", bytes.NewReader(big))
	require.True(t, errors.Is(err, domain.ErrValidation))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "oversized upload must not be kept")
}

func TestNewDiskStore_RequiresPositiveLimit(t *testing.T) {
	_, err := NewDiskStore(t.TempDir(), 0)
	assert.Error(t, err)
}
