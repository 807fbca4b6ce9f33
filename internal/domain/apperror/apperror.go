// Package apperror carries the failure taxonomy shared by all usecases:
// validation failures, missing entities, business conflicts, authorization
// rejections and post-write consistency violations. The HTTP boundary maps
// kinds to status codes; usecases and repositories only deal in kinds.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks malformed or policy-violating input.
	KindValidation
	// KindNotFound marks a missing referenced entity.
	KindNotFound
	// KindConflict marks a business rejection: overlapping slot, no
	// operator capacity, time-window lockout, already-terminal record.
	KindConflict
	// KindUnauthorized marks a caller not entitled to act on a record.
	KindUnauthorized
	// KindConsistency marks a violated post-write invariant. It is fatal
	// for the operation and indicates a bug or a lost race, not a user
	// mistake.
	KindConsistency
)

// Error is a typed application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a KindValidation error.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds a KindUnauthorized error.
func Unauthorized(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Consistency builds a KindConsistency error.
func Consistency(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConsistency, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an error built by one of the constructors.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// KindOf extracts the kind from an error chain, KindUnknown when the
// chain carries no application error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
