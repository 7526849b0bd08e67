package gqlerrors

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sprucehealth/gqlast/language/location"
)

type FormattedError struct {
	Message       string                    `json:"message" yaml:"message"`
	Type          ErrorType                 `json:"type,omitempty" yaml:"type,omitempty"`
	Locations     []location.SourceLocation `json:"locations" yaml:"locations"`
	StackTrace    string                    `json:"-" yaml:"-"`
	OriginalError error                     `json:"-" yaml:"-"`
}

func (g FormattedError) Error() string {
	return g.Message
}

func NewFormattedError(message string) FormattedError {
	return FormatError(errors.New(message))
}

func FormatError(err error) FormattedError {
	if e, ok := asType[FormattedError](err); ok {
		return e
	}
	if e, ok := asType[*FormattedError](err); ok {
		return *e
	}
	if e, ok := asType[*Error](err); ok {
		return FormattedError{
			Type:          e.Type,
			Message:       e.Error(),
			Locations:     e.Locations,
			OriginalError: e.OriginalError,
		}
	}
	if e, ok := asType[runtime.Error](err); ok {
		return FormattedError{
			Message:       e.Error(),
			Type:          ErrorTypeInternal,
			StackTrace:    stackTrace(),
			OriginalError: e,
		}
	}
	return FormattedError{
		Type:          ErrorTypeInternal,
		Message:       err.Error(),
		Locations:     []location.SourceLocation{},
		OriginalError: err,
	}
}

// FormatPanic converts a recovered panic value, such as a builder
// precondition failure, into an internal error.
func FormatPanic(r any) FormattedError {
	switch e := r.(type) {
	case FormattedError:
		return e
	case error:
		return FormattedError{
			Message:       fmt.Sprintf("panic: %v", e),
			Type:          ErrorTypeInternal,
			StackTrace:    stackTrace(),
			OriginalError: e,
		}
	}
	return FormattedError{
		Message:    fmt.Sprintf("panic: %v", r),
		Type:       ErrorTypeInternal,
		StackTrace: stackTrace(),
	}
}

func FormatErrors(errs ...error) []FormattedError {
	formattedErrors := make([]FormattedError, 0, len(errs))
	for _, err := range errs {
		formattedErrors = append(formattedErrors, FormatError(err))
	}
	return formattedErrors
}

func asType[T any](err error) (T, bool) {
	var target T
	if errors.As(err, &target) {
		return target, true
	}
	return target, false
}

func stackTrace() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
