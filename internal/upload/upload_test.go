package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/config"
)

func testHandler(t *testing.T) (*Handler, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		UploadDir:         dir,
		UploadBaseURL:     "https://cdn.example.com",
		MaxUploadSize:     1 << 20,
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp", ".gif"},
	}
	backend, err := NewLocalBackend(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	return NewWithBackend(cfg, backend), dir
}

func TestSaveImage(t *testing.T) {
	h, dir := testHandler(t)

	res, err := h.SaveImage(context.Background(), "site photo.jpg", []byte("fake-image-bytes"), "")
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	if res.Size != int64(len("fake-image-bytes")) {
		t.Errorf("unexpected size: %d", res.Size)
	}
	if !strings.HasPrefix(res.URL, "https://cdn.example.com/uploads/") {
		t.Errorf("unexpected URL: %s", res.URL)
	}
	if !strings.HasSuffix(res.Filename, ".jpg") {
		t.Errorf("extension lost: %s", res.Filename)
	}
	if strings.Contains(res.Filename, " ") {
		t.Errorf("filename not sanitized: %s", res.Filename)
	}

	data, err := os.ReadFile(filepath.Join(dir, res.Filename))
	if err != nil {
		t.Fatalf("uploaded file missing on disk: %v", err)
	}
	if string(data) != "fake-image-bytes" {
		t.Error("file content mismatch")
	}
}

func TestSaveImageRejectsExtension(t *testing.T) {
	h, _ := testHandler(t)

	_, err := h.SaveImage(context.Background(), "payload.exe", []byte("x"), "")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected ValidationError for disallowed extension, got %v", err)
	}
}

func TestSaveImageRejectsOversize(t *testing.T) {
	h, _ := testHandler(t)

	big := make([]byte, (1<<20)+1)
	_, err := h.SaveImage(context.Background(), "big.png", big, "")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected ValidationError for oversized file, got %v", err)
	}
}

func TestSaveImageUniqueNames(t *testing.T) {
	h, _ := testHandler(t)
	ctx := context.Background()

	first, err := h.SaveImage(ctx, "photo.png", []byte("a"), "")
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	second, err := h.SaveImage(ctx, "photo.png", []byte("b"), "")
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if first.Filename == second.Filename {
		t.Error("two uploads of the same name must not collide")
	}
}

func TestDeleteImage(t *testing.T) {
	h, dir := testHandler(t)
	ctx := context.Background()

	res, err := h.SaveImage(ctx, "photo.png", []byte("x"), "")
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	if err := h.DeleteImage(ctx, res.URL); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, res.Filename)); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}

	if err := h.DeleteImage(ctx, res.URL); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound on second delete, got %v", err)
	}
}

func TestRequestBaseFallback(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		UploadDir:         dir,
		MaxUploadSize:     1 << 20,
		AllowedExtensions: []string{".png"},
	}
	backend, err := NewLocalBackend(cfg.UploadDir, "")
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	h := NewWithBackend(cfg, backend)

	res, err := h.SaveImage(context.Background(), "a.png", []byte("x"), "https://api.example.com")
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if !strings.HasPrefix(res.URL, "https://api.example.com/uploads/") {
		t.Errorf("expected request-derived base, got %s", res.URL)
	}

	res, err = h.SaveImage(context.Background(), "b.png", []byte("x"), "")
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if !strings.HasPrefix(res.URL, "http://localhost:8000/uploads/") {
		t.Errorf("expected default base, got %s", res.URL)
	}
}
