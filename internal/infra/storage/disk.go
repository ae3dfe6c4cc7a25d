package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/port"
	"github.com/bookerhq/booker-backend/internal/infra/config"
)

// maxObjectSize caps uploads at 5 MB.
const maxObjectSize = 5 << 20

// DiskStorage stores objects under a local directory and serves them
// through the static file route.
type DiskStorage struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

// NewDiskStorage ensures the storage directory exists and returns the adapter.
func NewDiskStorage(cfg config.StorageSettings, log *zap.Logger) (*DiskStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", cfg.Dir, err)
	}

	return &DiskStorage{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  log,
	}, nil
}

// Dir returns the directory backing the store.
func (s *DiskStorage) Dir() string {
	return s.dir
}

// Put writes the object to disk and returns its public URL. Keys must
// not escape the storage directory.
func (s *DiskStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if size > maxObjectSize {
		return "", fmt.Errorf("object %s exceeds %d bytes", key, maxObjectSize)
	}

	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	if _, err := io.Copy(f, io.LimitReader(r, maxObjectSize+1)); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close object %s: %w", key, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("store object %s: %w", key, err)
	}

	s.logger.Debug("object stored",
		zap.String("key", key),
		zap.String("content_type", contentType),
	)

	return s.baseURL + "/" + key, nil
}

// Remove deletes the object. A missing object is not an error.
func (s *DiskStorage) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func (s *DiskStorage) resolve(key string) (string, error) {
	cleaned := filepath.Clean(key)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.dir, cleaned), nil
}

var _ port.ObjectStorage = (*DiskStorage)(nil)
