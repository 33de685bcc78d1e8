package errs

import (
	"net/http"
)

// UnhandledErrorMessage is what clients see for errors nothing else recognised.
const UnhandledErrorMessage = "unhandled error"

// NewUnauthorizedError creates a 401 HTTPError. A nil code defaults to "UNAUTHORIZED".
func NewUnauthorizedError(message string, override bool, code *string, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnauthorized))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
		Action:   action,
	}
}

// NewBadRequestError creates a 400 HTTPError. A nil code defaults to "BAD_REQUEST".
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewUnhandledError is the fallback for errors without a mapping.
// It is a 400, and the message never carries internal detail.
func NewUnhandledError() *HTTPError {
	code := "UNHANDLED_ERROR"
	return NewBadRequestError(UnhandledErrorMessage, false, &code, nil, nil)
}
