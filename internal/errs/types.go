package errs

import (
	"net/http"
)

// newHTTPError builds an HTTPError for status. code replaces the default
// code derived from the status text ("Not Found" -> "NOT_FOUND") when non-nil.
func newHTTPError(status int, message string, override bool, code *string) *HTTPError {
	e := &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message:  message,
		Status:   status,
		Override: override,
	}
	if code != nil {
		e.Code = *code
	}
	return e
}

// NewBadRequestError creates a 400; errors carries per-field validation failures.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	e := newHTTPError(http.StatusBadRequest, message, override, code)
	e.Errors = errors
	return e
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, override, code)
}

// NewConflictError is returned when a create or a key-changing update hits
// an existing key.
func NewConflictError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusConflict, message, override, code)
}

func NewTooManyRequestsError(message string) *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, message, true, nil)
}

// NewInternalServerError hides the cause behind the generic status text;
// the real error only goes to logs.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false, nil)
}

// ValidationError converts a generic validation error into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil)
}
