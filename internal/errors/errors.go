package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested entity was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create something that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates an internal system error
	CodeInternal Code = "internal"

	// CodeContentMissing indicates a referenced effect/resource/action id is
	// absent from the content registry. Surfaced as a load-time validation
	// error, never a runtime abort.
	CodeContentMissing Code = "content_missing"

	// CodeInsufficientResource indicates a spend larger than the remaining pool
	CodeInsufficientResource Code = "insufficient_resource"

	// CodeInvalidTransition indicates an operation that does not match the
	// current state, e.g. finishing a rest that never started
	CodeInvalidTransition Code = "invalid_transition"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return &Error{
			Code:    engineErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(engineErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Helper functions for common error types

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// ContentMissing creates a content missing error for a dangling content id
func ContentMissing(kind, id string) *Error {
	return Newf(CodeContentMissing, "%s %q is not registered", kind, id).
		WithMeta("kind", kind).
		WithMeta("id", id)
}

// InsufficientResource creates a typed spend failure carrying the pool state
func InsufficientResource(kind string, needed, available int) *Error {
	return Newf(CodeInsufficientResource, "resource %q has %d remaining, need %d", kind, available, needed).
		WithMeta("resource", kind).
		WithMeta("needed", needed).
		WithMeta("available", available)
}

// InvalidTransition creates an invalid transition error enumerating the
// offending actors
func InvalidTransition(message string, actorIDs []string) *Error {
	return New(CodeInvalidTransition, message).WithMeta("actors", actorIDs)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsContentMissing checks if the error is a content missing error
func IsContentMissing(err error) bool {
	return Is(err, CodeContentMissing)
}

// IsInsufficientResource checks if the error is an insufficient resource error
func IsInsufficientResource(err error) bool {
	return Is(err, CodeInsufficientResource)
}

// IsInvalidTransition checks if the error is an invalid transition error
func IsInvalidTransition(err error) bool {
	return Is(err, CodeInvalidTransition)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
