package dashboard

import (
	"context"
	"sync"

	"github.com/nfrund/sigboard/internal/domain"
)

// Confirm asks the user to approve deleting id.
type Confirm func(id domain.SignatureID) bool

// Confirmed approves every deletion. Use it when confirmation already
// happened elsewhere, such as an htmx hx-confirm prompt.
func Confirmed(domain.SignatureID) bool { return true }

// View is the loaded dashboard and the actions available on it. The list it
// holds is updated in place by Delete and never re-fetched.
type View struct {
	api API

	Counts Counts
	// ListErr is set when the signature list could not be loaded.
	ListErr error

	mu         sync.RWMutex
	signatures []domain.Signature
}

// NewView wraps an already known list, e.g. for a single action request.
func NewView(api API, signatures []domain.Signature) *View {
	return &View{api: api, signatures: signatures}
}

// Signatures returns a copy of the current list.
func (v *View) Signatures() []domain.Signature {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]domain.Signature, len(v.signatures))
	copy(out, v.signatures)
	return out
}

// Errored is the shared error indicator for the counts.
func (v *View) Errored() bool { return v.Counts.Errored() }

// Preview returns the rendered markup for id.
func (v *View) Preview(ctx context.Context, id domain.SignatureID) (string, error) {
	return v.api.PreviewSignature(ctx, id)
}

// Export downloads the artifact for id, named after it whatever the content type.
func (v *View) Export(ctx context.Context, id domain.SignatureID) (domain.Artifact, error) {
	art, err := v.api.ExportSignature(ctx, id)
	if err != nil {
		return domain.Artifact{}, err
	}
	art.Filename = domain.ExportFilename(id)
	return art, nil
}

// Delete removes id after confirm approves it. The list is only changed when
// the API call succeeds, and removing an id it does not hold is a no-op.
func (v *View) Delete(ctx context.Context, id domain.SignatureID, confirm Confirm) error {
	if confirm == nil || !confirm(id) {
		return ErrNotConfirmed
	}
	if err := v.api.DeleteSignature(ctx, id); err != nil {
		return err
	}
	v.remove(id)
	return nil
}

func (v *View) remove(id domain.SignatureID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	kept := make([]domain.Signature, 0, len(v.signatures))
	for _, s := range v.signatures {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	v.signatures = kept
}
