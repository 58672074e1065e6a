// Package apperr defines the error taxonomy shared by services and transports.
//
// Every error that reaches a transport boundary is classified into one Kind.
// Unclassified errors are treated as Internal.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller.
type Kind int

const (
	// Internal is an unexpected failure (storage, programming error).
	Internal Kind = iota
	// Validation means a required field is missing or a value is out of range.
	Validation
	// Unauthorized means a project passphrase did not match.
	Unauthorized
	// NotFound means the referenced entity does not exist.
	NotFound
	// Upstream means the text generation service failed.
	Upstream
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "not_found"
	case Upstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is a classified error with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validationf returns a Validation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf returns a NotFound error.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthorizedf returns an Unauthorized error.
func Unauthorizedf(format string, args ...any) error {
	return &Error{Kind: Unauthorized, Message: fmt.Sprintf(format, args...)}
}

// UpstreamError wraps a text generation failure.
func UpstreamError(message string, err error) error {
	return &Error{Kind: Upstream, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
