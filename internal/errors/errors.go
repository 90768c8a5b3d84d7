package errors

import (
	"context"
	"errors"
	"fmt"
)

// Meta keys shared by the packages that attach identifiers to errors
const (
	MetaLevelID   = "level_id"
	MetaTerrainID = "terrain_id"
	MetaAreaType  = "area_type"
	MetaStage     = "stage"
)

// Error is a coded error that survives wrapping and the gRPC boundary
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on code, so errors.Is(err, errors.NotFound("")) holds through any
// number of wraps.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithMeta sets one metadata value and returns the receiver
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with the given code and a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. The code and meta of a wrapped *Error carry over;
// anything else becomes Internal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var inner *Error
	if errors.As(err, &inner) {
		return &Error{Code: inner.Code, Message: message, Cause: err, Meta: inner.Meta}
	}
	return &Error{Code: CodeInternal, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err under a new code, copying any meta it carried
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: code, Message: message, Cause: err, Meta: make(map[string]any)}
	var inner *Error
	if errors.As(err, &inner) {
		for k, v := range inner.Meta {
			wrapped.Meta[k] = v
		}
	}
	return wrapped
}

// FromContext converts a context error into Canceled or DeadlineExceeded.
// Other errors are wrapped like Wrap.
func FromContext(err error, message string) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return WrapWithCode(err, CodeDeadlineExceeded, message)
	case errors.Is(err, context.Canceled):
		return WrapWithCode(err, CodeCanceled, message)
	default:
		return Wrap(err, message)
	}
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// FailedPrecondition reports a level that cannot be processed as given,
// for example a layout without any floor.
func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

func Unavailable(message string) *Error {
	return New(CodeUnavailable, message)
}

func OutOfRangef(format string, args ...any) *Error {
	return Newf(CodeOutOfRange, format, args...)
}
