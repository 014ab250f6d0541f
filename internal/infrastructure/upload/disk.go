package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

const (
	// PublicPrefix is the URL path under which stored images are served.
	PublicPrefix = "/uploads/"

	sniffLen = 3072
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// DiskStore writes uploaded images to a local directory.
type DiskStore struct {
	dir      string
	maxBytes int64
}

// NewDiskStore creates dir when missing.
func NewDiskStore(dir string, maxBytes int64) (*DiskStore, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("upload: max bytes must be positive, got %d", maxBytes)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create dir: %w", err)
	}
	return &DiskStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save validates the extension and the sniffed content type, then stores the
// image as image-<uuid><ext>. Content over the size cap is discarded.
func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", domain.Validationf("only jpeg, jpg, png and webp images are allowed")
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("upload: read: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", domain.Validationf("image file is empty")
	}
	if !allowedType(mimetype.Detect(head)) {
		return "", domain.Validationf("only jpeg, jpg, png and webp images are allowed")
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := "image-" + uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("upload: create file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(io.MultiReader(bytes.NewReader(head), r), s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("upload: write: %w", err)
	}
	if written > s.maxBytes {
		_ = os.Remove(path)
		return "", domain.Validationf("image exceeds the %d byte limit", s.maxBytes)
	}

	return PublicPrefix + name, nil
}

func allowedType(m *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}
