package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv stores each key as a file under a base directory.
type Diskv struct {
	d *diskv.Diskv
}

// OpenDiskv creates a diskv-backed store rooted at basePath.
func OpenDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("kv: diskv base path is empty")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("kv: ensure base path: %w", err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}, nil
}

func (s *Diskv) Get(key string) (string, bool, error) {
	name := fileName(key)
	if !s.d.Has(name) {
		return "", false, nil
	}
	val, err := s.d.Read(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv: read %s: %w", key, err)
	}
	return string(val), true, nil
}

func (s *Diskv) Set(key, value string) error {
	if err := s.d.Write(fileName(key), []byte(value)); err != nil {
		return fmt.Errorf("kv: write %s: %w", key, err)
	}
	return nil
}

// Erase removes key; a missing key is not an error.
func (s *Diskv) Erase(key string) error {
	err := s.d.Erase(fileName(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("kv: erase %s: %w", key, err)
	}
	return nil
}

func (s *Diskv) Close() error {
	return nil
}

// fileName escapes key so it is always a single path element.
func fileName(key string) string {
	return url.PathEscape(key)
}
