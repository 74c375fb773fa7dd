// Package apperr is the application's error taxonomy.
//
// Every error that crosses a store or service boundary is wrapped in an
// *Error carrying a Kind. Callers test kinds with errors.Is against the
// sentinel values (ErrNotFound, ErrUnauthenticated, ...), and the HTTP
// layer maps kinds onto status codes with HTTPStatus.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an application error.
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindNotFound        Kind = "NOT_FOUND"
	KindInvalid         Kind = "INVALID"
	KindConflict        Kind = "CONFLICT"
	KindPersistFailure  Kind = "PERSIST_FAILURE"
	KindReadFailure     Kind = "READ_FAILURE"
	KindPartialFailure  Kind = "PARTIAL_FAILURE"
	KindToggleInFlight  Kind = "TOGGLE_IN_FLIGHT"
	KindRateLimited     Kind = "RATE_LIMITED"
)

// Error is an application error with a kind, a user-facing message and an
// optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of message or cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "sign in required"}
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalid         = &Error{Kind: KindInvalid, Message: "invalid input"}
	ErrConflict        = &Error{Kind: KindConflict, Message: "conflict"}
	ErrPersistFailure  = &Error{Kind: KindPersistFailure, Message: "write failed"}
	ErrReadFailure     = &Error{Kind: KindReadFailure, Message: "read failed"}
	ErrPartialFailure  = &Error{Kind: KindPartialFailure, Message: "partial failure"}
	ErrToggleInFlight  = &Error{Kind: KindToggleInFlight, Message: "another status change is still in progress"}
	ErrRateLimited     = &Error{Kind: KindRateLimited, Message: "too many attempts"}
)

// New builds an *Error of the given kind.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthenticated() *Error { return New(KindUnauthenticated, "sign in required", nil) }

func NotFound(what string) *Error { return New(KindNotFound, what+" not found", nil) }

func Invalid(message string, err error) *Error { return New(KindInvalid, message, err) }

func Conflict(message string) *Error { return New(KindConflict, message, nil) }

func PersistFailure(op string, err error) *Error {
	return New(KindPersistFailure, op+" failed", err)
}

func ReadFailure(op string, err error) *Error {
	return New(KindReadFailure, op+" failed", err)
}

func ToggleInFlight(agentID string) *Error {
	return New(KindToggleInFlight, "status change already in progress for agent "+agentID, nil)
}

func RateLimited(message string) *Error { return New(KindRateLimited, message, nil) }

// PartialError reports a multi-entity read where some entities failed.
// The successfully read entities are still returned by the caller.
type PartialError struct {
	FailedIDs []string
	Causes    []error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("[%s] %d item(s) could not be read: %s",
		KindPartialFailure, len(e.FailedIDs), strings.Join(e.FailedIDs, ", "))
}

func (e *PartialError) Unwrap() []error { return e.Causes }

func (e *PartialError) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Kind == KindPartialFailure
}

// KindOf returns the kind of err, or "" when err carries none.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var pe *PartialError
	if errors.As(err, &pe) {
		return KindPartialFailure
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Message returns the user-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var pe *PartialError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	return "internal error"
}

// HTTPStatus maps an error onto a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalid:
		return http.StatusBadRequest
	case KindConflict, KindToggleInFlight:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindReadFailure, KindPartialFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
