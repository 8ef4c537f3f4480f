package imagestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mercaline/mercaline-backend/pkg/config"
	"github.com/mercaline/mercaline-backend/pkg/logger"
)

var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ErrUnsupportedType signals a content type the store refuses to persist.
var ErrUnsupportedType = errors.New("unsupported image content type")

// ErrTooLarge signals a payload above the configured ceiling.
var ErrTooLarge = errors.New("image exceeds the configured size limit")

// Store writes uploaded product and banner images to local disk and serves
// them back through the public assets route.
type Store struct {
	dir      string
	baseURL  string
	maxBytes int64
}

// New prepares the upload directory and returns a ready store.
func New(cfg config.MediaConfig, logg *logger.Logger) (*Store, error) {
	if cfg.UploadDir == "" {
		return nil, errors.New("media upload dir is required")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	if logg != nil {
		logg.Info(context.Background(), "image store initialized")
	}
	return &Store{
		dir:      cfg.UploadDir,
		baseURL:  strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		maxBytes: cfg.MaxUploadBytes(),
	}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Save persists the image bytes and returns the public URL to reach them.
func (s *Store) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("image payload is empty")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	ext, ok := mimeExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing image file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

// Remove deletes a previously stored image by its public URL. Unknown URLs
// are ignored so callers can retry deletes safely.
func (s *Store) Remove(ctx context.Context, publicURL string) error {
	name := filepath.Base(publicURL)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing image file: %w", err)
	}
	return nil
}
