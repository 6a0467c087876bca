// Package upload stores listing images on local disk and serves them
// back under a configurable URL prefix.
package upload

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves uploaded images and resolves their public URLs
type Store interface {
	// Save writes the upload to storage and returns the stored filename
	// and the public URL it will be served from.
	Save(r io.Reader, originalName string) (filename string, url string, err error)
	// Remove deletes a stored file. Missing files are not an error.
	Remove(filename string) error
}

// DiskStore stores uploads in a local directory
type DiskStore struct {
	dir      string
	basePath string
}

// NewDiskStore creates the upload directory if needed
func NewDiskStore(dir, basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &DiskStore{dir: dir, basePath: strings.TrimSuffix(basePath, "/")}, nil
}

// Save writes the upload under a random name, keeping the original extension
func (s *DiskStore) Save(r io.Reader, originalName string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	filename := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", "", fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", "", fmt.Errorf("writing upload: %w", err)
	}

	return filename, path.Join(s.basePath, filename), nil
}

// Remove deletes a stored file by name
func (s *DiskStore) Remove(filename string) error {
	// Refuse path traversal out of the upload dir
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid filename %q", filename)
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the directory files are stored in, for serving
func (s *DiskStore) Dir() string {
	return s.dir
}
