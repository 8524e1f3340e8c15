// Package apiclient is the single outbound gateway to the remote signature
// API. It attaches the session token it was handed, centralises the base
// address, and turns every failure into a *domain.Error.
//
// There is no retry, backoff, or timeout policy here: each failure is
// returned to the caller as soon as it happens.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/internal/session"
	"github.com/nfrund/sigboard/internal/telemetry"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 1 << 16

// HTTPClient matches the subset of http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the remote API on behalf of one session.
type Client struct {
	base   *url.URL
	http   HTTPClient
	tokens session.TokenReader
	tracer trace.Tracer
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTracer records a span per request.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New constructs a Client for the API rooted at baseURL. The returned client
// has no session; use WithSession to bind one.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("apiclient: base URL %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	c := &Client{
		base:   parsed,
		http:   http.DefaultClient,
		tracer: telemetry.Noop(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithSession returns a copy of c that reads its bearer token from tokens.
// The receiver is left untouched, so one Client can serve many sessions.
func (c *Client) WithSession(tokens session.TokenReader) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.base.String() }

// Request sends body as JSON, attaching the session token when one is
// present, and decodes a successful JSON response into out. A nil out
// discards the response body.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any) error {
	return c.request(ctx, method, endpoint, body, out, true)
}

func (c *Client) request(ctx context.Context, method, endpoint string, body, out any, authenticated bool) error {
	data, _, err := c.roundTrip(ctx, method, endpoint, body, authenticated)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domain.NewError(domain.KindServerError, http.StatusOK, "", fmt.Errorf("apiclient: decode %s %s: %w", method, endpoint, err))
	}
	return nil
}

// raw performs an authenticated request and returns the undecoded body.
func (c *Client) raw(ctx context.Context, method, endpoint string) ([]byte, string, error) {
	return c.roundTrip(ctx, method, endpoint, nil, true)
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, body any, authenticated bool) ([]byte, string, error) {
	ctx, span := c.tracer.Start(ctx, "apiclient."+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", endpoint),
		),
	)
	defer span.End()

	req, err := c.newRequest(ctx, method, endpoint, body, authenticated)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, "", err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := domain.NewError(domain.KindNetworkError, 0, "", fmt.Errorf("apiclient: %s %s: %w", method, endpoint, err))
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Error())
		c.logger.WarnContext(ctx, "API request failed", "method", method, "endpoint", endpoint, "error", err)
		return nil, "", apiErr
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.DebugContext(ctx, "API request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errorFromResponse(resp)
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Error())
		return nil, "", apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := domain.NewError(domain.KindNetworkError, resp.StatusCode, "", fmt.Errorf("apiclient: read %s %s: %w", method, endpoint, err))
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Error())
		return nil, "", apiErr
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any, authenticated bool) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(body); err != nil {
			return nil, domain.NewError(domain.KindValidation, 0, "", fmt.Errorf("apiclient: encode payload: %w", err))
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(endpoint), reader)
	if err != nil {
		return nil, domain.NewError(domain.KindNetworkError, 0, "", fmt.Errorf("apiclient: build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated && c.tokens != nil {
		if token, ok := c.tokens.Get(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) resolve(endpoint string) string {
	trimmed := strings.TrimPrefix(endpoint, "/")
	if trimmed == "" {
		return c.base.String()
	}
	ref, err := url.Parse(trimmed)
	if err != nil {
		ref = &url.URL{Path: trimmed}
	}
	return c.base.ResolveReference(ref).String()
}

// errorFromResponse maps a non-2xx response onto the error taxonomy, taking
// the message from the body's "error" or "message" field when present.
func errorFromResponse(resp *http.Response) *domain.Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	type errorPayload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	var payload errorPayload
	var message string
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		message = strings.TrimSpace(payload.Error)
		if message == "" {
			message = strings.TrimSpace(payload.Message)
		}
	}

	cause := fmt.Errorf("apiclient: backend returned %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	return domain.NewError(kindForStatus(resp.StatusCode), resp.StatusCode, message, cause)
}

func kindForStatus(status int) domain.Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return domain.KindUnauthorized
	case status == http.StatusNotFound:
		return domain.KindNotFound
	case status >= 500:
		return domain.KindServerError
	case status >= 400:
		return domain.KindValidation
	default:
		// 1xx/3xx reaching here means the transport did not follow through.
		return domain.KindServerError
	}
}
