// Package dashboard loads the signed-in user's overview: three independent
// counts and the signature list, fetched concurrently and rendered even when
// some of them fail.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/nfrund/sigboard/internal/domain"
)

// LoadFailedMessage is the single indicator shown when any count fails.
const LoadFailedMessage = "Failed to load dashboard data."

// ErrNotConfirmed is returned by Delete when the user did not confirm.
var ErrNotConfirmed = errors.New("dashboard: deletion not confirmed")

// Reader is the set of reads issued on dashboard entry.
type Reader interface {
	CountAnalytics(ctx context.Context) (int64, error)
	CountSignatures(ctx context.Context) (int64, error)
	CountLinks(ctx context.Context) (int64, error)
	ListSignatures(ctx context.Context) ([]domain.Signature, error)
}

// API is everything the dashboard calls on the remote API.
type API interface {
	Reader
	PreviewSignature(ctx context.Context, id domain.SignatureID) (string, error)
	ExportSignature(ctx context.Context, id domain.SignatureID) (domain.Artifact, error)
	DeleteSignature(ctx context.Context, id domain.SignatureID) error
}

// Count is one scalar read; Err is set when it failed.
type Count struct {
	Value int64
	Err   error
}

// OK reports whether the count loaded.
func (c Count) OK() bool { return c.Err == nil }

// Counts groups the three dashboard counts.
type Counts struct {
	Analytics  Count
	Signatures Count
	Links      Count
}

// Errored reports whether any count failed.
func (c Counts) Errored() bool {
	return !c.Analytics.OK() || !c.Signatures.OK() || !c.Links.OK()
}

// Err returns the first count failure, preferring the order they are shown.
func (c Counts) Err() error {
	for _, count := range []Count{c.Analytics, c.Signatures, c.Links} {
		if count.Err != nil {
			return count.Err
		}
	}
	return nil
}

// Aggregator fans the dashboard reads out to the API and back in.
type Aggregator struct {
	api    API
	logger *slog.Logger
}

// NewAggregator builds an Aggregator over api.
func NewAggregator(api API, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{api: api, logger: logger}
}

// Load issues the four reads concurrently. A failing read never blocks or
// blanks the others. When ctx ends before every read settles, the partial
// results are discarded and ctx.Err() is returned.
func (a *Aggregator) Load(ctx context.Context) (*View, error) {
	return a.load(ctx, true, true)
}

// LoadCounts issues only the three count reads.
func (a *Aggregator) LoadCounts(ctx context.Context) (Counts, error) {
	v, err := a.load(ctx, true, false)
	if err != nil {
		return Counts{}, err
	}
	return v.Counts, nil
}

// LoadSignatures issues only the list read.
func (a *Aggregator) LoadSignatures(ctx context.Context) (*View, error) {
	return a.load(ctx, false, true)
}

func (a *Aggregator) load(ctx context.Context, withCounts, withList bool) (*View, error) {
	type countRead struct {
		name string
		dst  *Count
		fn   func(context.Context) (int64, error)
	}

	var (
		wg      sync.WaitGroup
		counts  Counts
		list    []domain.Signature
		listErr error
		reads   []countRead
	)
	if withCounts {
		reads = []countRead{
			{"analytics", &counts.Analytics, a.api.CountAnalytics},
			{"signatures", &counts.Signatures, a.api.CountSignatures},
			{"links", &counts.Links, a.api.CountLinks},
		}
	}

	for _, r := range reads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.dst.Value, r.dst.Err = r.fn(ctx)
		}()
	}
	if withList {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, listErr = a.api.ListSignatures(ctx)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		a.logger.DebugContext(ctx, "dashboard load abandoned", "error", ctx.Err())
		return nil, ctx.Err()
	case <-done:
	}
	// Reads that settled because ctx ended are not worth rendering either.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, r := range reads {
		if r.dst.Err != nil {
			a.logger.WarnContext(ctx, "dashboard count failed", "count", r.name, "kind", domain.KindOf(r.dst.Err), "error", r.dst.Err)
		}
	}
	if listErr != nil {
		a.logger.WarnContext(ctx, "dashboard list failed", "kind", domain.KindOf(listErr), "error", listErr)
	}

	return &View{
		api:        a.api,
		Counts:     counts,
		signatures: list,
		ListErr:    listErr,
	}, nil
}

// Unauthorized reports whether any count was rejected for the session.
func (c Counts) Unauthorized() bool {
	for _, count := range []Count{c.Analytics, c.Signatures, c.Links} {
		if errors.Is(count.Err, domain.ErrUnauthorized) {
			return true
		}
	}
	return false
}

// Unauthorized reports whether any read was rejected for the session, which
// means the stored token is no longer accepted.
func (v *View) Unauthorized() bool {
	return v.Counts.Unauthorized() || errors.Is(v.ListErr, domain.ErrUnauthorized)
}
