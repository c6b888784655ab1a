// Package store persists the portfolio state document on the local disk.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/etnz/capital"
	"github.com/google/renameio/v2"
)

// File is a state document stored as a single JSON file.
type File struct {
	path string
}

// NewFile returns the store for the document at path. Nothing is read or
// written until Load or Save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the location of the document.
func (f *File) Path() string { return f.path }

// Load reads and migrates the document. A missing document is not an error:
// it yields a fresh uninitialized state.
func (f *File) Load() (*capital.State, error) {
	r, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("no portfolio found at %q, starting a new one", f.path)
		return capital.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open portfolio: %w", err)
	}
	defer r.Close()

	s, err := capital.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("cannot load portfolio %q: %w", f.path, err)
	}
	return s, nil
}

// Save writes s atomically: the document replaces the previous one through
// a rename, so a crash leaves either the old or the new version.
func (f *File) Save(s *capital.State) error {
	var buf bytes.Buffer
	if err := capital.Export(&buf, s); err != nil {
		return fmt.Errorf("cannot encode portfolio: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("cannot create portfolio directory: %w", err)
	}
	if err := renameio.WriteFile(f.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot save portfolio: %w", err)
	}
	return nil
}
