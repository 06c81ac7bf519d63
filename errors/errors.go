package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
)

// PlatformError is an error carrying a code, a human readable message,
// an optional underlying cause and optional structured context.
type PlatformError struct {
	// Code classifies the failure.
	Code ErrorCode `json:"code"`

	// Message describes the failure without secrets.
	Message string `json:"message"`

	// Context holds structured details such as paths or endpoints.
	Context map[string]interface{} `json:"context,omitempty"`

	// Cause is the wrapped error, if any.
	Cause error `json:"-"`

	// sentinel lets callers match this error against a package-level sentinel.
	sentinel error
}

// Error implements the error interface.
func (e *PlatformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chaining.
func (e *PlatformError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel this error was tagged with,
// or a PlatformError carrying the same code and no message.
func (e *PlatformError) Is(target error) bool {
	if e.sentinel != nil && e.sentinel == target {
		return true
	}
	var pe *PlatformError
	if stderrors.As(target, &pe) && pe.Message == "" {
		return pe.Code == e.Code
	}
	return false
}

// WithSentinel tags the error so errors.Is(err, sentinel) reports true.
func (e *PlatformError) WithSentinel(sentinel error) *PlatformError {
	e.sentinel = sentinel
	return e
}

// WithContext merges key/value details into the error context.
func (e *PlatformError) WithContext(ctx map[string]interface{}) *PlatformError {
	if len(ctx) == 0 {
		return e
	}
	if e.Context == nil {
		e.Context = make(map[string]interface{}, len(ctx))
	}
	maps.Copy(e.Context, ctx)
	return e
}

// New creates a PlatformError with the given code and message.
func New(code ErrorCode, message string) *PlatformError {
	return &PlatformError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a PlatformError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a PlatformError that wraps err.
// Returns nil if err is nil.
func Wrap(err error, code ErrorCode, message string) *PlatformError {
	if err == nil {
		return nil
	}
	return &PlatformError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapWithContext wraps err and attaches structured context.
// Returns nil if err is nil.
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) *PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, message).WithContext(ctx)
}

// GetCode returns the code of the outermost PlatformError in err's chain,
// or CodeUnknown when there is none.
func GetCode(err error) ErrorCode {
	var pe *PlatformError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return CodeUnknown
}

// HasCode reports whether any PlatformError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var pe *PlatformError
		if !stderrors.As(err, &pe) {
			return false
		}
		if pe.Code == code {
			return true
		}
		err = pe.Cause
	}
	return false
}

// Is is a passthrough to the standard library errors.Is.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As is a passthrough to the standard library errors.As.
func As(err error, target any) bool { return stderrors.As(err, target) }
