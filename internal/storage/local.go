package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes document assets below a directory on disk. It backs
// development setups that have no object store configured.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

// NewLocalStorage returns storage rooted at dir.
func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// Save writes content to Dir/name. contentType is not recorded on disk.
func (s *LocalStorage) Save(ctx context.Context, name, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := strings.TrimLeft(filepath.ToSlash(filepath.Clean("/"+name)), "/")
	if key == "" {
		return "", fmt.Errorf("local storage: empty key")
	}

	target := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("local storage mkdir %s: %w", key, err)
	}

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("local storage create %s: %w", key, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("local storage write %s: %w", key, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("local storage close %s: %w", key, err)
	}

	if s.BaseURL == "" {
		return key, nil
	}
	return s.BaseURL + "/" + key, nil
}
