package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per shopper under dir.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: create dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) Load(_ context.Context, shopperID string) ([]byte, error) {
	data, err := os.ReadFile(f.path(shopperID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: read: %w", err)
	}
	return data, nil
}

// Save writes through a temporary file so a crash never leaves a torn record.
func (f *FileStore) Save(_ context.Context, shopperID string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, shopperID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("session: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("session: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(shopperID)); err != nil {
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}

func (f *FileStore) path(shopperID string) string {
	return filepath.Join(f.dir, shopperID+".json")
}
