package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Disabled(t *testing.T) {
	tracer, cleanup, err := Setup(context.Background(), DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, tracer)
	defer cleanup()

	_, span := tracer.Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid(), "disabled tracing should produce no-op spans")
	span.End()
}

func TestSetup_Enabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.ServiceName = "sigboard-test"

	tracer, cleanup, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	_, span := tracer.Start(context.Background(), "real")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}
