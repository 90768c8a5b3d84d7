package errors

import (
	"errors"
)

// Is forwards to the standard library so callers need a single errors import
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the outermost *Error in the chain.
// nil is OK and a foreign error is Internal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e := find(err); e != nil {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error in the chain
func GetMeta(err error) map[string]any {
	if e := find(err); e != nil {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message of the outermost *Error, or err.Error() for
// foreign errors
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := find(err); e != nil {
		return e.Message
	}
	return err.Error()
}

func find(err error) *Error {
	var e *Error
	if err != nil && errors.As(err, &e) {
		return e
	}
	return nil
}

func IsNotFound(err error) bool           { return GetCode(err) == CodeNotFound }
func IsInvalidArgument(err error) bool    { return GetCode(err) == CodeInvalidArgument }
func IsAlreadyExists(err error) bool      { return GetCode(err) == CodeAlreadyExists }
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }
func IsInternal(err error) bool           { return GetCode(err) == CodeInternal }
func IsUnavailable(err error) bool        { return GetCode(err) == CodeUnavailable }

// IsCanceled covers both a cancelled and an expired context
func IsCanceled(err error) bool {
	c := GetCode(err)
	return c == CodeCanceled || c == CodeDeadlineExceeded
}
