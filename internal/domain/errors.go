package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures of core operations
type ErrorKind string

const (
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindPastSchedule    ErrorKind = "past_schedule"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindLimitExceeded   ErrorKind = "limit_exceeded"
	KindPersistence     ErrorKind = "persistence_error"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindInternal        ErrorKind = "internal"
)

// StatusCode maps the kind to an HTTP status
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindInvalidArgument, KindPastSchedule:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is the failure type returned by every core operation
type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]interface{}
	Err     error
}

// NewError creates an error of the given kind
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
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

// WithDetail attaches a structured field to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause records the underlying error
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return NewError(KindInvalidArgument, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return NewError(KindNotFound, format, args...)
}

func Persistence(err error, format string, args ...interface{}) *Error {
	return NewError(KindPersistence, format, args...).WithCause(err)
}

// AsError extracts *Error from the chain
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of err. Foreign errors are KindInternal
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if de, ok := AsError(err); ok {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusCode returns the HTTP status for err
func StatusCode(err error) int {
	return KindOf(err).StatusCode()
}
