// Package auth implements the login, registration and sign-out flows.
package auth

import (
	"errors"
	"sync"
)

// State is a step of a submission Flow.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// ErrInFlight is returned when a submission starts while another is pending.
var ErrInFlight = errors.New("auth: submission already in flight")

// Flow tracks one form's submission. A failed submission returns the flow to
// Idle with Err set so the form can be resubmitted. It is safe for concurrent
// use.
type Flow struct {
	mu    sync.Mutex
	state State
	err   error
}

// NewFlow returns an idle flow.
func NewFlow() *Flow { return &Flow{} }

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the error of the last failed submission, if any.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Submit moves the flow to submitting, runs fn, and records its outcome.
// The error from fn is returned unchanged.
func (f *Flow) Submit(fn func() error) error {
	if err := f.begin(); err != nil {
		return err
	}
	err := fn()
	f.settle(err)
	return err
}

func (f *Flow) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Submitting {
		return ErrInFlight
	}
	f.state = Submitting
	f.err = nil
	return nil
}

func (f *Flow) settle(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = Idle
		f.err = err
		return
	}
	f.state = Succeeded
}

// Submissions holds the pending flow of each form submission key, such as
// "login:" plus the email, so a repeated submission for the same key is
// rejected with ErrInFlight while the first is still running. A flow is
// dropped as soon as it settles.
type Submissions struct {
	mu    sync.Mutex
	flows map[string]*Flow
}

// NewSubmissions returns an empty registry.
func NewSubmissions() *Submissions {
	return &Submissions{flows: make(map[string]*Flow)}
}

// Submit runs fn through the flow for key.
func (s *Submissions) Submit(key string, fn func() error) error {
	s.mu.Lock()
	f, ok := s.flows[key]
	if !ok {
		f = NewFlow()
		s.flows[key] = f
	}
	if err := f.begin(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	err := fn()

	s.mu.Lock()
	f.settle(err)
	delete(s.flows, key)
	s.mu.Unlock()
	return err
}

// Pending reports how many submissions are running.
func (s *Submissions) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}
