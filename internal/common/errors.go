// Package common defines shared constants and errors used across the client
// and server layers of gophauth. Callers should use errors.Is to match the
// sentinel values and errors.As to reach the kinded *Error.
package common

import (
	"errors"
	"net/http"
)

// Kind classifies a failure into one of the statuses surfaced to callers.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindUnauthorized
)

// Status returns the machine-readable HTTP-style status of the kind.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal error"
	}
}

// Error is a kinded failure with a human-readable message. The wrapped Err,
// if any, is kept for logging and is never shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of the same kind, so that
// errors.Is(err, ErrorForbidden) holds for every forbidden failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// NewError builds a kinded error with the given message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind carried by err, or KindInternal for unkinded errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	// Kind sentinels.
	ErrorNotFound     = &Error{Kind: KindNotFound}
	ErrorForbidden    = &Error{Kind: KindForbidden}
	ErrorUnauthorized = &Error{Kind: KindUnauthorized}
	ErrorInternal     = &Error{Kind: KindInternal}

	// Token errors returned by the signer.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Request shape errors.
	ErrInvalidRequest = errors.New("invalid request")
)
