// Package disk stores uploaded blobs on the local filesystem, served back
// under a public URL prefix.
package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type BlobStore struct {
	dir       string
	urlPrefix string
}

// NewBlobStore creates dir if needed. urlPrefix is the public path the
// server mounts the directory under, e.g. "/uploads".
func NewBlobStore(dir, urlPrefix string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &BlobStore{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *BlobStore) Save(_ context.Context, name string, data []byte) (string, error) {
	// name is always generated server-side; Base guards against a caller
	// ever passing a path.
	name = filepath.Base(name)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}

func (s *BlobStore) Dir() string {
	return s.dir
}
