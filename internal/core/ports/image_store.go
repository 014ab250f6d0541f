package ports

import (
	"context"
	"io"
)

// ImageStore persists uploaded product images.
type ImageStore interface {
	// Save stores the image read from r, using originalName only for its
	// extension, and returns the public URL path of the stored file.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}
