package identity

import (
	"errors"
	"net/http"
)

// ErrNoSubject is returned when a request carries no valid identity.
var ErrNoSubject = errors.New("no authenticated subject")

// Verifier resolves the authenticated subject identifier from an inbound
// request. The concrete provider stays swappable behind this interface so
// handlers and middleware can be tested with a stub.
type Verifier interface {
	ResolveSubject(r *http.Request) (string, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(r *http.Request) (string, error)

func (f VerifierFunc) ResolveSubject(r *http.Request) (string, error) { return f(r) }
