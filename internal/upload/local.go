package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geosite/cms/internal/apperr"
)

// LocalBackend stores uploads in a directory served at /uploads.
type LocalBackend struct {
	dir     string
	baseURL string
}

func NewLocalBackend(dir, baseURL string) (*LocalBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalBackend{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (b *LocalBackend) Save(ctx context.Context, filename string, data []byte) error {
	path := filepath.Join(b.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write upload: %w", err)
	}
	return nil
}

func (b *LocalBackend) Delete(ctx context.Context, filename string) error {
	path := filepath.Join(b.dir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return apperr.NotFound("File not found")
	}
	if err := os.Remove(path); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (b *LocalBackend) PublicURL(filename, requestBase string) string {
	base := b.baseURL
	if base == "" {
		base = strings.TrimSuffix(requestBase, "/")
	}
	if base == "" {
		base = "http://localhost:8000"
	}
	return base + "/uploads/" + filename
}
