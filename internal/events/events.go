// Package events declares what the dashboard announces on the bus and keeps
// an audit trail of it.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/internal/pubsub"
)

// Envelope fields shared by every event.
type Envelope struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newEnvelope() Envelope {
	return Envelope{ID: uuid.NewString(), OccurredAt: time.Now().UTC()}
}

type SessionSignedIn struct {
	Envelope
	Email string `json:"email"`
}

type SessionSignedOut struct {
	Envelope
	Forced bool `json:"forced"`
}

type AccountRegistered struct {
	Envelope
	Email string `json:"email"`
}

type SignatureCreated struct {
	Envelope
	SignatureID domain.SignatureID `json:"signature_id,omitempty"`
	Name        string             `json:"name"`
}

type SignatureDeleted struct {
	Envelope
	SignatureID domain.SignatureID `json:"signature_id"`
}

type SignatureExported struct {
	Envelope
	SignatureID domain.SignatureID `json:"signature_id"`
	Filename    string             `json:"filename"`
}

type LinkCreated struct {
	Envelope
	SignatureID domain.SignatureID `json:"signature_id"`
	URL         string             `json:"url"`
}

var (
	TopicSignedIn          = pubsub.NewEvent[SessionSignedIn]("session.signed_in")
	TopicSignedOut         = pubsub.NewEvent[SessionSignedOut]("session.signed_out")
	TopicRegistered        = pubsub.NewEvent[AccountRegistered]("account.registered")
	TopicSignatureCreated  = pubsub.NewEvent[SignatureCreated]("signature.created")
	TopicSignatureDeleted  = pubsub.NewEvent[SignatureDeleted]("signature.deleted")
	TopicSignatureExported = pubsub.NewEvent[SignatureExported]("signature.exported")
	TopicLinkCreated       = pubsub.NewEvent[LinkCreated]("link.created")
)

func NewSignedIn(email string) SessionSignedIn {
	return SessionSignedIn{Envelope: newEnvelope(), Email: email}
}

func NewSignedOut(forced bool) SessionSignedOut {
	return SessionSignedOut{Envelope: newEnvelope(), Forced: forced}
}

func NewRegistered(email string) AccountRegistered {
	return AccountRegistered{Envelope: newEnvelope(), Email: email}
}

func NewSignatureCreated(sig domain.Signature) SignatureCreated {
	return SignatureCreated{Envelope: newEnvelope(), SignatureID: sig.ID, Name: sig.TemplateData.Name}
}

func NewSignatureDeleted(id domain.SignatureID) SignatureDeleted {
	return SignatureDeleted{Envelope: newEnvelope(), SignatureID: id}
}

func NewSignatureExported(id domain.SignatureID, filename string) SignatureExported {
	return SignatureExported{Envelope: newEnvelope(), SignatureID: id, Filename: filename}
}

func NewLinkCreated(link domain.Link) LinkCreated {
	return LinkCreated{Envelope: newEnvelope(), SignatureID: link.SignatureID, URL: link.URL}
}
