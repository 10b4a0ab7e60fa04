package oauth

import (
	"errors"
	"fmt"
)

// Error codes surfaced by this package. Validation failures are raised
// synchronously at construction time; backend failures only ever arrive
// through the asynchronous sign-in path.
const (
	CodeInvalidArgument = "invalid-argument"
	CodeBackendError    = "backend-error"
	CodeUnknown         = "unknown-error"
)

// ErrNoInteractiveSignIn is returned when a sign-in is attempted and no
// interactive capability has been registered for this host.
var ErrNoInteractiveSignIn = errors.New("oauth: no interactive sign-in capability registered")

// Error is a coded error. Backend errors wrap the original cause
// untouched so callers can unwrap it.
type Error struct {
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("oauth: %s: %s", e.Code, e.cause.Error())
	}
	return fmt.Sprintf("oauth: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// InvalidArgumentf reports a missing or empty required field.
func InvalidArgumentf(format string, args ...any) *Error {
	return &Error{
		Code:    CodeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

// BackendError surfaces a failure from the identity backend verbatim.
// A nil cause degrades to Unknown so callers never see a nil failure.
func BackendError(cause error) *Error {
	if cause == nil {
		return Unknown("backend signaled failure without a cause")
	}
	return &Error{
		Code:    CodeBackendError,
		Message: cause.Error(),
		cause:   cause,
	}
}

// Unknown is the fallback failure. It is always constructible.
func Unknown(msg string) *Error {
	if msg == "" {
		msg = "unknown error"
	}
	return &Error{
		Code:    CodeUnknown,
		Message: msg,
	}
}

func hasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsInvalidArgument reports whether err is a construction-time
// validation failure.
func IsInvalidArgument(err error) bool {
	return hasCode(err, CodeInvalidArgument)
}

// IsBackendError reports whether err originated from the identity
// backend or the IDP.
func IsBackendError(err error) bool {
	return hasCode(err, CodeBackendError)
}
