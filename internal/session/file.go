package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileStore keeps the token in a single file, so a CLI session survives
// between invocations.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore returns a store for the token file at path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// DefaultTokenPath is ~/.config/sigboard/token, or a relative fallback when
// the user config directory cannot be determined.
func DefaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".sigboard", "token")
	}
	return filepath.Join(dir, "sigboard", "token")
}

// Path returns the location of the token file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get() (string, bool) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (s *FileStore) Set(token string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create token dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return fmt.Errorf("session: write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := s.fs.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: remove token file: %w", err)
	}
	return nil
}
