package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	// ErrDependency marks failures of an outside system (SMS gateway, store).
	ErrDependency = errors.New("dependency failure")
)

// Error pairs a sentinel kind with a caller-facing message and an optional cause.
// errors.Is matches both the kind and the cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewError returns an *Error of the given kind.
func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Dependency wraps cause as an ErrDependency failure.
func Dependency(msg string, cause error) *Error {
	return &Error{Kind: ErrDependency, Msg: msg, Err: cause}
}
