package storage

import (
	"context"
	"io"
)

// Store is a byte store keyed by slash-separated names relative to its root.
// Save replaces whatever was stored under name and reports the bytes written.
type Store interface {
	Save(ctx context.Context, name string, body io.Reader) (int64, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

var _ Store = (*AferoStore)(nil)
