// Package telemetry configures OpenTelemetry tracing for outbound API calls
// and event publishing.
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/nfrund/sigboard"

// Config holds configuration for OpenTelemetry tracing.
type Config struct {
	Enabled     bool
	ServiceName string
	ZipkinURL   string
	Version     string
}

// DefaultConfig returns tracing disabled with local Zipkin defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		ServiceName: "sigboard",
		ZipkinURL:   "http://localhost:9411/api/v2/spans",
		Version:     "dev",
	}
}

// Setup returns a tracer and its cleanup function. When tracing is disabled
// the tracer is a no-op and cleanup does nothing.
func Setup(ctx context.Context, cfg Config) (trace.Tracer, func(), error) {
	if !cfg.Enabled {
		return Noop(), func() {}, nil
	}

	exporter, err := zipkin.New(cfg.ZipkinURL)
	if err != nil {
		return nil, nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.Version),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	cleanup := func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			slog.Error("Failed to flush traces", "error", err)
		}
	}
	return tp.Tracer(instrumentationName), cleanup, nil
}

// Noop returns a tracer that records nothing.
func Noop() trace.Tracer {
	return noop.NewTracerProvider().Tracer(instrumentationName)
}
