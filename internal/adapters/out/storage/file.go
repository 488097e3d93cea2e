// internal/adapters/out/storage/file.go
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// FileBlobStore keeps one JSON file per cart key under a directory, the
// server-side analog of the original single-storage-key browser cart.
type FileBlobStore struct {
	dir string
}

func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("file_blob_store: dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBlobStore{dir: dir}, nil
}

func (s *FileBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (s *FileBlobStore) Set(_ context.Context, key string, blob []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	// write-then-rename so a crashed write never leaves a torn blob
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

func (s *FileBlobStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileBlobStore) path(key string) (string, error) {
	name := sanitizeKey(key)
	if name == "" {
		return "", errors.New("file_blob_store: key is empty")
	}
	return filepath.Join(s.dir, name+".json"), nil
}

// sanitizeKey restricts file names to a safe alphanumeric/hyphen set.
func sanitizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))

	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
