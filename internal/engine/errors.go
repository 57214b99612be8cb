package engine

import (
	"errors"
	"fmt"
)

// Kind categorizes an engine failure. The set mirrors the outward behaviour
// of the API: each kind maps to exactly one HTTP status class.
type Kind string

const (
	// KindUnauthorized indicates no valid principal was supplied.
	KindUnauthorized Kind = "UNAUTHORIZED"

	// KindValidation indicates missing or malformed input.
	KindValidation Kind = "VALIDATION_ERROR"

	// KindNotFoundOrForbidden indicates the entity is absent or owned by
	// another user. The two cases are deliberately merged so responses do
	// not disclose whether the entity exists.
	KindNotFoundOrForbidden Kind = "NOT_FOUND_OR_FORBIDDEN"

	// KindForbidden indicates the caller is authenticated and the entity
	// exists, but the caller's role is insufficient.
	KindForbidden Kind = "FORBIDDEN"

	// KindNotFound indicates a non-sensitive entity (e.g. a workspace id in
	// a detail read) does not exist.
	KindNotFound Kind = "NOT_FOUND"

	// KindConflict indicates the operation contradicts current state, such
	// as completing a habit twice in one day or removing a sole owner.
	KindConflict Kind = "CONFLICT"

	// KindStore indicates an underlying persistence failure.
	KindStore Kind = "STORE_ERROR"

	// KindUpstream indicates the external text-generation call failed.
	KindUpstream Kind = "UPSTREAM_ERROR"
)

// Error is a typed engine failure carrying its taxonomy kind, a short
// user-facing message, and the wrapped cause when one exists.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the taxonomy kind of err, or KindStore for untyped errors
// that escaped the engine boundary.
func KindOf(err error) Kind {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return KindStore
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Message
	}
	return err.Error()
}

func errUnauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "unauthorized"}
}

func errValidationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func errNotFoundOrForbidden(entity string) *Error {
	return &Error{Kind: KindNotFoundOrForbidden, Message: entity + " not found or access denied"}
}

func errForbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func errNotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func errConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func errStore(op string, err error) *Error {
	return &Error{Kind: KindStore, Message: "failed to " + op, Err: err}
}
