package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"

	"github.com/nfrund/sigboard/internal/apiclient"
	"github.com/nfrund/sigboard/internal/auth"
	"github.com/nfrund/sigboard/internal/config"
	"github.com/nfrund/sigboard/internal/events"
	"github.com/nfrund/sigboard/internal/pubsub"
	"github.com/nfrund/sigboard/internal/rendering"
	"github.com/nfrund/sigboard/internal/server"
	"github.com/nfrund/sigboard/internal/session"
	"github.com/nfrund/sigboard/internal/storage"
	"github.com/nfrund/sigboard/internal/telemetry"
)

func (a *App) register() {
	i := a.Injector

	do.ProvideValue(i, a.cfg)
	do.ProvideValue(i, a.logger)
	do.ProvideValue(i, a.opts.Fs)

	do.Provide(i, a.provideTracer)
	do.Provide(i, a.provideBus)
	do.Provide(i, a.provideAPIClient)
	do.Provide(i, a.provideAuth)
	do.Provide(i, a.provideAudit)
	do.Provide(i, a.provideTokenFile)
	do.Provide(i, a.provideExports)
	do.Provide(i, a.provideServer)
}

func (a *App) provideTracer(i do.Injector) (trace.Tracer, error) {
	cfg := do.MustInvoke[config.Provider](i)
	tracer, cleanup, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:     cfg.GetTracingEnabled(),
		ServiceName: cfg.GetTracingServiceName(),
		ZipkinURL:   cfg.GetTracingZipkinURL(),
		Version:     a.opts.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("app: tracing: %w", err)
	}
	a.onClose(func() error {
		cleanup()
		return nil
	})
	return tracer, nil
}

func (a *App) provideBus(i do.Injector) (*pubsub.WatermillBridge, error) {
	tracer, err := do.Invoke[trace.Tracer](i)
	if err != nil {
		return nil, err
	}
	bus := pubsub.NewWatermillBridgeWithTracer(tracer)
	a.onClose(bus.Close)
	return bus, nil
}

func (a *App) provideAPIClient(i do.Injector) (*apiclient.Client, error) {
	cfg := do.MustInvoke[config.Provider](i)
	tracer, err := do.Invoke[trace.Tracer](i)
	if err != nil {
		return nil, err
	}
	opts := []apiclient.Option{
		apiclient.WithTracer(tracer),
		apiclient.WithLogger(do.MustInvoke[*slog.Logger](i)),
	}
	if a.opts.HTTPClient != nil {
		opts = append(opts, apiclient.WithHTTPClient(a.opts.HTTPClient))
	}
	return apiclient.New(cfg.GetAPIBaseURL(), opts...)
}

func (a *App) provideAuth(i do.Injector) (*auth.Service, error) {
	client, err := do.Invoke[*apiclient.Client](i)
	if err != nil {
		return nil, err
	}
	bus, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return nil, err
	}
	return auth.NewService(client, bus, do.MustInvoke[*slog.Logger](i)), nil
}

func (a *App) provideAudit(i do.Injector) (*events.Audit, error) {
	return events.NewAudit(do.MustInvoke[*slog.Logger](i)), nil
}

func (a *App) provideTokenFile(i do.Injector) (*session.FileStore, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return session.NewFileStore(do.MustInvoke[afero.Fs](i), cfg.GetTokenFile()), nil
}

func (a *App) provideExports(i do.Injector) (*storage.ExportStore, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return storage.NewExportStore(do.MustInvoke[afero.Fs](i), cfg.GetExportDir()), nil
}

func (a *App) provideServer(i do.Injector) (*server.Server, error) {
	client, err := do.Invoke[*apiclient.Client](i)
	if err != nil {
		return nil, err
	}
	svc, err := do.Invoke[*auth.Service](i)
	if err != nil {
		return nil, err
	}
	bus, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return nil, err
	}
	s, err := server.New(server.Dependencies{
		Config:    do.MustInvoke[config.Provider](i),
		Logger:    do.MustInvoke[*slog.Logger](i),
		API:       client,
		Auth:      svc,
		Publisher: bus,
		Renderer:  rendering.NewUniversalRenderer(),
		Version:   a.opts.Version,
	})
	if err != nil {
		return nil, err
	}
	s.RegisterRoutes()
	return s, nil
}

// API returns the shared API client, bound to no session.
func (a *App) API() (*apiclient.Client, error) { return do.Invoke[*apiclient.Client](a.Injector) }

// Auth returns the auth service.
func (a *App) Auth() (*auth.Service, error) { return do.Invoke[*auth.Service](a.Injector) }

// Bus returns the in-process event bus.
func (a *App) Bus() (*pubsub.WatermillBridge, error) {
	return do.Invoke[*pubsub.WatermillBridge](a.Injector)
}

// Audit returns the audit subscriber.
func (a *App) Audit() (*events.Audit, error) { return do.Invoke[*events.Audit](a.Injector) }

// TokenFile returns the CLI's persistent token store.
func (a *App) TokenFile() (*session.FileStore, error) {
	return do.Invoke[*session.FileStore](a.Injector)
}

// Exports returns the store exports are written to.
func (a *App) Exports() (*storage.ExportStore, error) {
	return do.Invoke[*storage.ExportStore](a.Injector)
}

// Server returns the HTTP server with its routes registered.
func (a *App) Server() (*server.Server, error) { return do.Invoke[*server.Server](a.Injector) }
