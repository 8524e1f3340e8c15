package events

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/sigboard/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a bytes.Buffer shared with the subscriber goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestAudit_LogsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, nil))

	bus := pubsub.NewWatermillBridge()
	defer bus.Close()

	require.NoError(t, NewAudit(logger).Start(ctx, bus))

	require.NoError(t, pubsub.Publish(ctx, bus, TopicSignatureDeleted, "", NewSignatureDeleted("42")))
	require.NoError(t, pubsub.Publish(ctx, bus, TopicSignedOut, "", NewSignedOut(true)))

	assert.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, "signature deleted") && strings.Contains(s, "session signed out")
	}, time.Second, 10*time.Millisecond)

	assert.Contains(t, out.String(), "signature_id=42")
	assert.Contains(t, out.String(), "forced=true")
	assert.Contains(t, out.String(), "component=audit")
}

func TestEnvelope_IsUnique(t *testing.T) {
	a, b := NewSignedIn("a@b.com"), NewSignedIn("a@b.com")
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.OccurredAt.IsZero())
}
