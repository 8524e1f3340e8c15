// Package storage writes exported signatures to a filesystem.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrExists is returned when an export would overwrite a file and overwriting
// was not requested.
var ErrExists = errors.New("storage: file already exists")

// AferoStore is a Store on any afero filesystem: the OS filesystem for the
// CLI, a MemMapFs in tests.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// Save writes the content of the reader to path, creating parent directories.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, reader)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Open opens path for reading.
func (s *AferoStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fs.OpenFile(path, os.O_RDONLY, 0)
}

// Delete removes path.
func (s *AferoStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fs.Remove(path)
}

// Exists reports whether path is present.
func (s *AferoStore) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

// ExportStore saves exported signatures under a directory.
type ExportStore struct {
	store *AferoStore
	dir   string
}

// NewExportStore returns an ExportStore writing into dir on fs.
func NewExportStore(fs afero.Fs, dir string) *ExportStore {
	if dir == "" {
		dir = "."
	}
	return &ExportStore{store: NewAferoStore(fs), dir: dir}
}

// Dir is the directory exports are written to.
func (e *ExportStore) Dir() string { return e.dir }

// Save writes body as dir/filename and returns the path written. The file
// name is reduced to its base so it cannot escape dir.
func (e *ExportStore) Save(ctx context.Context, filename string, body []byte, overwrite bool) (string, error) {
	name := filepath.Base(filepath.Clean("/" + filename))
	if name == "/" || name == "." {
		return "", fmt.Errorf("storage: invalid file name %q", filename)
	}
	path := filepath.Join(e.dir, name)

	if !overwrite {
		exists, err := e.store.Exists(path)
		if err != nil {
			return "", fmt.Errorf("storage: stat %s: %w", path, err)
		}
		if exists {
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	if _, err := e.store.Save(ctx, path, bytes.NewReader(body)); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", path, err)
	}
	return path, nil
}
