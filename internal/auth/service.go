package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/internal/events"
	"github.com/nfrund/sigboard/internal/pubsub"
	"github.com/nfrund/sigboard/internal/session"
)

// API is the part of the remote API the auth flows call.
type API interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Register(ctx context.Context, reg domain.Registration) error
}

// Service runs the auth flows against the remote API.
type Service struct {
	api       API
	publisher pubsub.Publisher
	logger    *slog.Logger
}

// NewService builds a Service. A nil publisher drops events.
func NewService(api API, publisher pubsub.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = pubsub.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, publisher: publisher, logger: logger}
}

// Login exchanges creds for a token and stores it in tokens. Nothing is
// written to tokens when the remote API rejects the credentials.
func (s *Service) Login(ctx context.Context, tokens session.TokenStore, creds domain.Credentials) error {
	token, err := s.api.Login(ctx, creds)
	if err != nil {
		s.logger.InfoContext(ctx, "login rejected", "email", creds.Email, "kind", domain.KindOf(err))
		return err
	}
	if err := tokens.Set(token); err != nil {
		return fmt.Errorf("auth: store session token: %w", err)
	}

	if err := pubsub.Publish(ctx, s.publisher, events.TopicSignedIn, creds.Email, events.NewSignedIn(creds.Email)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish sign-in", "error", err)
	}
	return nil
}

// Register creates an account. Mismatched passwords fail with
// domain.ErrPasswordMismatch before any request is sent. Registration does
// not sign the user in.
func (s *Service) Register(ctx context.Context, reg domain.Registration) error {
	if !reg.PasswordsMatch() {
		return domain.ErrPasswordMismatch
	}
	if err := s.api.Register(ctx, reg); err != nil {
		s.logger.InfoContext(ctx, "registration rejected", "email", reg.Email, "kind", domain.KindOf(err))
		return err
	}

	if err := pubsub.Publish(ctx, s.publisher, events.TopicRegistered, reg.Email, events.NewRegistered(reg.Email)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish registration", "error", err)
	}
	return nil
}

// SignOut clears tokens. It cannot fail: a store that refuses to clear is
// logged and the caller proceeds to the login view regardless. forced marks
// a sign-out caused by the API rejecting the token.
func (s *Service) SignOut(ctx context.Context, tokens session.TokenStore, forced bool) {
	if err := tokens.Clear(); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear session token", "error", err)
	}
	if err := pubsub.Publish(ctx, s.publisher, events.TopicSignedOut, "", events.NewSignedOut(forced)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish sign-out", "error", err)
	}
}
