package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure talking to the remote API, or a client-side
// rejection that is reported the same way.
type Kind int

const (
	KindUnauthorized Kind = iota + 1
	KindValidation
	KindNotFound
	KindServerError
	KindNetworkError
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServerError:
		return "server_error"
	case KindNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind. Any *Error matches the sentinel of its kind
// under errors.Is.
var (
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrServer       = &Error{Kind: KindServerError}
	ErrNetwork      = &Error{Kind: KindNetworkError}
)

// ErrPasswordMismatch is returned by registration before any request is sent.
var ErrPasswordMismatch = NewError(KindValidation, 0, "Passwords do not match.", nil)

// Error is the uniform failure shape surfaced by the API client.
type Error struct {
	Kind Kind
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// Message is the human-readable message from the response body, if any.
	Message string
	Err     error
}

// NewError builds an *Error.
func NewError(kind Kind, status int, message string, err error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.UserMessage())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.UserMessage())
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// UserMessage returns the message to show next to the control that failed.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericMessage(e.Kind)
}

// GenericMessage is the fallback text for a kind when the server sent none.
func GenericMessage(kind Kind) string {
	switch kind {
	case KindUnauthorized:
		return "Your session has expired. Please sign in again."
	case KindValidation:
		return "The request was rejected. Please check your input."
	case KindNotFound:
		return "The requested item could not be found."
	case KindNetworkError:
		return "Could not reach the server. Please check your connection."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// KindOf returns the Kind of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// MessageOr returns the message carried by err, falling back to the supplied
// text when err has none.
func MessageOr(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
