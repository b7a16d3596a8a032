// Package apperr defines the error taxonomy shared by services, repositories
// and the HTTP boundary. Handlers map each kind to a status code; the wrapped
// cause is for logs only and never reaches a client.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrInternal       = errors.New("internal error")
)

type Error struct {
	Kind    error  // one of the sentinels above
	Message string // safe to show to clients
	Cause   error  // underlying error, logs only
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

func DuplicateEmail() *Error {
	return &Error{Kind: ErrDuplicateEmail, Message: "the email has already been taken"}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Kind: ErrNotFound, Message: resource + " not found"}
}

func Internal(cause error) *Error {
	return &Error{Kind: ErrInternal, Message: "something went wrong, try again", Cause: cause}
}

// HTTPStatus maps an error to the status code the boundary should return.
// Unknown errors are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to expose for err. Anything outside
// the taxonomy gets the generic internal message.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && !errors.Is(err, ErrInternal) {
		return e.Message
	}
	return "something went wrong, try again"
}
