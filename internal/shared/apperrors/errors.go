// Package apperrors defines the error kinds shared by every booking
// component. Services wrap failures with a Kind so controllers can pick an
// HTTP status without string matching.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure.
type Kind string

const (
	KindValidation           Kind = "validation"
	KindNotFound             Kind = "not_found"
	KindResourceInactive     Kind = "resource_inactive"
	KindAvailabilityConflict Kind = "availability_conflict"
	KindAuthorization        Kind = "authorization"
	KindAlreadyCancelled     Kind = "already_cancelled"
	KindInvalidTransition    Kind = "invalid_transition"
	KindInternal             Kind = "internal"
)

// Sentinels for errors.Is checks. Every *Error matches the sentinel of its kind.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrResourceInactive     = errors.New("resource inactive")
	ErrAvailabilityConflict = errors.New("resource not available")
	ErrAuthorization        = errors.New("not authorized")
	ErrAlreadyCancelled     = errors.New("reservation already cancelled")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

var sentinels = map[Kind]error{
	KindValidation:           ErrValidation,
	KindNotFound:             ErrNotFound,
	KindResourceInactive:     ErrResourceInactive,
	KindAvailabilityConflict: ErrAvailabilityConflict,
	KindAuthorization:        ErrAuthorization,
	KindAlreadyCancelled:     ErrAlreadyCancelled,
	KindInvalidTransition:    ErrInvalidTransition,
}

// Error is a classified failure. Issues carries structured context for the
// response body, such as the per-resource reasons of a conflict.
type Error struct {
	Kind    Kind
	Message string
	Issues  interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) match any not_found Error.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// WithIssues returns a copy of e carrying issues.
func (e *Error) WithIssues(issues interface{}) *Error {
	cp := *e
	cp.Issues = issues
	return &cp
}

func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(resource, id string) *Error {
	return New(KindNotFound, "%s %s not found", resource, id)
}

func Inactive(resource, id string) *Error {
	return New(KindResourceInactive, "%s %s is not active", resource, id)
}

func Conflict(issues interface{}) *Error {
	return New(KindAvailabilityConflict, "requested resources are not available").WithIssues(issues)
}

func Forbidden(format string, args ...interface{}) *Error {
	return New(KindAuthorization, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IssuesOf returns the issues of the first *Error in err's chain.
func IssuesOf(err error) interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Issues
	}
	return nil
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindResourceInactive:
		return http.StatusUnprocessableEntity
	case KindAvailabilityConflict, KindAlreadyCancelled, KindInvalidTransition:
		return http.StatusConflict
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func AlreadyCancelled(id string) *Error {
	return New(KindAlreadyCancelled, "reservation %s is already cancelled", id)
}

func InvalidTransition(id, from, to string) *Error {
	return New(KindInvalidTransition, "reservation %s cannot move from %s to %s", id, from, to)
}
