package ipfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore pins blobs onto the local filesystem, addressed by the same CID
// a degraded upload would produce. It is intended for development
// environments where no pinning credentials are available but the produced
// image and metadata documents should still be inspectable.
type FileStore struct {
	basePath string
}

// NewFileStore initializes a FileStore rooted at basePath.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("ipfs: file store base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("ipfs: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Upload writes the blob under its content CID and returns that CID.
func (s *FileStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := PlaceholderCID(data)
	path := filepath.Join(s.basePath, id+extensionFor(contentType))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("ipfs: write blob: %w", err)
	}
	return id, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "application/json":
		return ".json"
	default:
		return ""
	}
}

var _ Uploader = (*FileStore)(nil)
