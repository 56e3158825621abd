package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API failure. Each kind maps to a stable numeric code
// and an HTTP status, so handlers never invent statuses ad hoc.
type Kind int

const (
	Validation Kind = iota + 1
	Conflict
	Unauthorized
	NotFound
	Upstream
	Internal
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "not_found"
	case Upstream:
		return "upstream_failure"
	case Internal:
		return "internal"
	}
	return "unknown"
}

// Error is the single failure value every public operation returns.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Code is the stable numeric code carried in responses.
func (e *Error) Code() int { return int(e.Kind) * 1000 }

// HTTPStatus maps the kind onto a transport status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, msg string, details ...string) *Error {
	return &Error{Kind: kind, Message: msg, Details: details}
}

// Wrap attaches an underlying cause without leaking it into the message.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Wrapped: err}
}

// From extracts an *Error from err, defaulting unknown failures to Internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: Internal, Message: "internal error", Wrapped: err}
}

// Is lets errors.Is match on kind via sentinel comparisons.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// KindOf reports the kind of err, or Internal for foreign errors.
func KindOf(err error) Kind { return From(err).Kind }
