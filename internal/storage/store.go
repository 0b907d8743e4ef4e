// Package storage keeps uploaded images and generated codes on disk.
package storage

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidName = errors.New("storage: invalid file name")
	ErrNotFound    = errors.New("storage: file not found")
)

// Store writes files with random names into a single directory.
type Store struct {
	dir string
}

// New creates dir if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// SavePNG encodes img as PNG and returns the generated file name.
func (s *Store) SavePNG(img image.Image) (string, error) {
	return s.write(".png", func(w io.Writer) error {
		return png.Encode(w, img)
	})
}

// SaveUpload copies r into a new file with extension ext.
func (s *Store) SaveUpload(r io.Reader, ext string) (string, error) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if strings.ContainsAny(ext, `/\`) {
		return "", ErrInvalidName
	}
	return s.write(ext, func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
}

// Path resolves a stored file name to its location on disk.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidName
	}
	p := filepath.Join(s.dir, name)
	info, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: stat %s: %w", name, err)
	}
	return p, nil
}

func (s *Store) write(ext string, fill func(io.Writer) error) (string, error) {
	name := newName(ext)
	p := filepath.Join(s.dir, name)

	f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", name, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		os.Remove(p)
		return "", fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return "", fmt.Errorf("storage: close %s: %w", name, err)
	}
	return name, nil
}

// newName returns a uuid v4 in hex without dashes, plus ext.
func newName(ext string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}
