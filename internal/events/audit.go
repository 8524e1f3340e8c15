package events

import (
	"context"
	"log/slog"

	"github.com/nfrund/sigboard/internal/pubsub"
)

// Audit writes one structured log line per event it sees.
type Audit struct {
	logger *slog.Logger
}

// NewAudit returns an Audit logging to logger, or slog.Default when nil.
func NewAudit(logger *slog.Logger) *Audit {
	if logger == nil {
		logger = slog.Default()
	}
	return &Audit{logger: logger.With("component", "audit")}
}

// Start subscribes to every topic. Subscriptions end when ctx is cancelled.
func (a *Audit) Start(ctx context.Context, sub pubsub.Subscriber) error {
	subs := []func() error{
		func() error {
			return pubsub.Subscribe(ctx, sub, TopicSignedIn, func(ctx context.Context, _ string, e SessionSignedIn) error {
				a.logger.InfoContext(ctx, "session signed in", "event_id", e.ID, "email", e.Email)
				return nil
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, sub, TopicSignedOut, func(ctx context.Context, _ string, e SessionSignedOut) error {
				a.logger.InfoContext(ctx, "session signed out", "event_id", e.ID, "forced", e.Forced)
				return nil
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, sub, TopicRegistered, func(ctx context.Context, _ string, e AccountRegistered) error {
				a.logger.InfoContext(ctx, "account registered", "event_id", e.ID, "email", e.Email)
				return nil
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, sub, TopicSignatureCreated, func(ctx context.Context, _ string, e SignatureCreated) error {
				a.logger.InfoContext(ctx, "signature created", "event_id", e.ID, "signature_id", e.SignatureID, "name", e.Name)
				return nil
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, sub, TopicSignatureDeleted, func(ctx context.Context, _ string, e SignatureDeleted) error {
				a.logger.InfoContext(ctx, "signature deleted", "event_id", e.ID, "signature_id", e.SignatureID)
				return nil
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, sub, TopicSignatureExported, func(ctx context.Context, _ string, e SignatureExported) error {
				a.logger.InfoContext(ctx, "signature exported", "event_id", e.ID, "signature_id", e.SignatureID, "filename", e.Filename)
				return nil
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, sub, TopicLinkCreated, func(ctx context.Context, _ string, e LinkCreated) error {
				a.logger.InfoContext(ctx, "link created", "event_id", e.ID, "signature_id", e.SignatureID, "url", e.URL)
				return nil
			})
		},
	}

	for _, subscribe := range subs {
		if err := subscribe(); err != nil {
			return err
		}
	}
	return nil
}
