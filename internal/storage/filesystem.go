package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"shortforge/internal/domain"
)

// BlobStore persists generated artifacts under a store-chosen name and
// serves them back by that name. The retention and location policy lives
// entirely behind this interface so it can be swapped for object storage
// without touching pipeline logic.
type BlobStore interface {
	// Store persists the bytes and returns the artifact name.
	Store(ctx context.Context, data []byte) (string, error)
	// Fetch returns the artifact bytes, or domain.ErrNotFound.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FileStore persists artifacts onto the local filesystem. It is intended for
// development and single-host deployments where an object storage service is
// not available.
type FileStore struct {
	basePath string
}

// NewFileStore initializes a FileStore rooted at basePath.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Store writes the bytes under a generated mp4 name and returns that name.
func (s *FileStore) Store(ctx context.Context, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := NewArtifactName()
	fullPath := filepath.Join(s.basePath, name)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write artifact: %w", err)
	}
	return name, nil
}

// Fetch reads an artifact back by name. Names are sanitized to prevent
// directory traversal out of the storage root.
func (s *FileStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	if s == nil {
		return nil, errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleanName, err := sanitizeName(name)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.basePath, filepath.FromSlash(cleanName)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("storage: read artifact: %w", err)
	}
	return data, nil
}

// NewArtifactName generates a unique file name for a stored short.
func NewArtifactName() string {
	return fmt.Sprintf("short_%s.mp4", strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// sanitizeName normalizes an artifact name and prevents escaping the
// storage root.
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("storage: name is required")
	}
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimLeft(name, "/")
	cleaned := filepath.Clean(name)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") || strings.Contains(cleaned, "/") {
		return "", errors.New("storage: invalid name")
	}
	return cleaned, nil
}

var _ BlobStore = (*FileStore)(nil)
