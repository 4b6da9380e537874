// Package upload validates and persists image uploads. The allowed
// extensions and the maximum size live in configuration, shared by every
// call site. Files go to a local directory by default, or to an
// S3-compatible bucket when one is configured.
package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/config"
)

// Backend stores and removes named files.
type Backend interface {
	Save(ctx context.Context, filename string, data []byte) error
	// Delete removes a file; NotFound if it does not exist.
	Delete(ctx context.Context, filename string) error
	// PublicURL returns the retrievable URL for filename. requestBase is
	// the scheme://host derived from the inbound request, used when no
	// base URL is configured.
	PublicURL(filename, requestBase string) string
}

// Result describes a stored upload.
type Result struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Handler validates uploads and delegates persistence to a backend.
type Handler struct {
	backend    Backend
	allowedExt map[string]struct{}
	maxSize    int64
}

// New builds a handler from configuration, choosing the R2 backend when
// R2 credentials are present and local disk otherwise.
func New(cfg *config.Config) (*Handler, error) {
	var backend Backend
	var err error
	if cfg.R2Endpoint != "" && cfg.R2AccessKey != "" {
		backend, err = NewS3Backend(cfg)
	} else {
		backend, err = NewLocalBackend(cfg.UploadDir, cfg.UploadBaseURL)
	}
	if err != nil {
		return nil, err
	}
	return NewWithBackend(cfg, backend), nil
}

func NewWithBackend(cfg *config.Config, backend Backend) *Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Handler{
		backend:    backend,
		allowedExt: allowed,
		maxSize:    cfg.MaxUploadSize,
	}
}

// SaveImage validates data against the extension allowlist and the size
// limit, stores it under a collision-resistant name and returns its URL.
func (h *Handler) SaveImage(ctx context.Context, originalName string, data []byte, requestBase string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := h.allowedExt[ext]; !ok {
		return nil, apperr.Validation("Unsupported file format. Allowed formats: %s", strings.Join(h.allowedList(), ", "))
	}

	if int64(len(data)) > h.maxSize {
		return nil, apperr.Validation("File too large. Maximum size: %dMB", h.maxSize/(1024*1024))
	}

	filename := uniqueFilename(originalName, ext)
	if err := h.backend.Save(ctx, filename, data); err != nil {
		return nil, apperr.Internal(err)
	}

	return &Result{
		URL:      h.backend.PublicURL(filename, requestBase),
		Filename: filename,
		Size:     int64(len(data)),
	}, nil
}

// DeleteImage removes the file named by the trailing path segment of url.
func (h *Handler) DeleteImage(ctx context.Context, url string) error {
	filename := filepath.Base(strings.TrimSuffix(url, "/"))
	if filename == "" || filename == "." || filename == "/" {
		return apperr.Validation("Invalid file URL")
	}
	return h.backend.Delete(ctx, filename)
}

func (h *Handler) allowedList() []string {
	exts := make([]string, 0, len(h.allowedExt))
	for ext := range h.allowedExt {
		exts = append(exts, ext)
	}
	return exts
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// uniqueFilename builds <timestamp>_<token>_<sanitized-stem><ext>.
func uniqueFilename(originalName, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	stem = unsafeChars.ReplaceAllString(stem, "-")
	if len(stem) > 60 {
		stem = stem[:60]
	}
	if stem == "" {
		stem = "image"
	}
	timestamp := time.Now().UTC().Format("20060102_150405")
	token := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s%s", timestamp, token, stem, ext)
}
