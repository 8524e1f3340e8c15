// Package app wires sigboard's services into a samber/do container shared by
// the web server and the CLI. Services are built lazily on first use.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"

	"github.com/nfrund/sigboard/internal/apiclient"
	"github.com/nfrund/sigboard/internal/config"
)

// Options adjusts how services are built. The zero value is production.
type Options struct {
	Version string
	// Fs backs the CLI token file and exports. Defaults to the OS filesystem.
	Fs afero.Fs
	// HTTPClient replaces the API client's transport.
	HTTPClient apiclient.HTTPClient
}

// App owns the container and the cleanup of whatever it constructed.
type App struct {
	Injector *do.RootScope

	cfg    config.Provider
	logger *slog.Logger
	opts   Options

	mu      sync.Mutex
	closers []func() error
}

// New registers every provider. Nothing is constructed until invoked.
func New(cfg config.Provider, logger *slog.Logger, opts Options) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	a := &App{Injector: do.New(), cfg: cfg, logger: logger, opts: opts}
	a.register()
	return a
}

// onClose queues fn to run when the App is closed, latest first.
func (a *App) onClose(fn func() error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, fn)
}

// Close releases constructed services in reverse order of construction.
func (a *App) Close() error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StartAudit subscribes the audit log to the event bus until ctx ends.
func (a *App) StartAudit(ctx context.Context) error {
	bus, err := a.Bus()
	if err != nil {
		return err
	}
	audit, err := a.Audit()
	if err != nil {
		return err
	}
	return audit.Start(ctx, bus)
}
