// Package cargoerr defines the error kinds returned by the cargo engine.
//
// Every public operation either succeeds or fails with an *Error whose Kind tells
// the caller how to react: retry (ConcurrentModification, Timeout), fix the input
// (InvalidRequest, NotFound) or report a bug (Geometry, Internal).
package cargoerr

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidRequest
	KindGeometry
	KindConcurrentModification
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInvalidRequest:
		return "InvalidRequest"
	case KindGeometry:
		return "GeometryError"
	case KindConcurrentModification:
		return "ConcurrentModification"
	case KindTimeout:
		return "Timeout"
	default:
		return "InternalError"
	}
}

// Sentinels for errors.Is checks. Errors created by this package match the
// sentinel of their kind.
var (
	ErrNotFound               = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalidRequest         = &Error{Kind: KindInvalidRequest, Message: "invalid request"}
	ErrGeometry               = &Error{Kind: KindGeometry, Message: "geometry invariant violated"}
	ErrConcurrentModification = &Error{Kind: KindConcurrentModification, Message: "concurrent modification"}
	ErrTimeout                = &Error{Kind: KindTimeout, Message: "timed out"}
	ErrInternal               = &Error{Kind: KindInternal, Message: "internal error"}
)

// Error is a classified engine error.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an unknown item or container identifier.
func NotFound(op, format string, args ...any) *Error {
	return newf(KindNotFound, op, format, args...)
}

// Invalid reports malformed input.
func Invalid(op, format string, args ...any) *Error {
	return newf(KindInvalidRequest, op, format, args...)
}

// Geometry reports a broken spatial invariant, such as an overlapping placement.
func Geometry(op, format string, args ...any) *Error {
	return newf(KindGeometry, op, format, args...)
}

// Conflict reports a lost optimistic race.
func Conflict(op, format string, args ...any) *Error {
	return newf(KindConcurrentModification, op, format, args...)
}

// Timeout reports a lock that could not be acquired in time.
func Timeout(op, format string, args ...any) *Error {
	return newf(KindTimeout, op, format, args...)
}

// Wrap classifies err under kind. A nil err returns nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Message: kind.String(), Err: err}
}

// Internal wraps an unexpected failure, typically from a repository.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return Wrap(KindInternal, op, err)
}

// KindOf returns the kind of the first *Error in err's chain. Unclassified
// errors are internal.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
