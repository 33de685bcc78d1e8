package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/labstack/echo/v4"
)

const (
	// MalformedBodyMessage is returned when the request body is not valid JSON.
	MalformedBodyMessage = "malformed request body"

	// BodyField names the whole body in type errors at the JSON root, e.g. an
	// object sent where an array is expected.
	BodyField = "request body"
)

// BindAndValidate binds path params, query and JSON body into payload
// (which must be a pointer) and runs its Validate method.
//
// Both bind and validation failures are returned as 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		message, fieldErrors := extractValidationError(reflect.TypeOf(payload), err)
		return errs.NewBadRequestError(message, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindError(err error) *errs.HTTPError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := lastSegment(typeErr.Field)
		if field == "" {
			field = BodyField
		}
		message := fmt.Sprintf("%s has an invalid type", field)
		if isIntKind(typeErr.Type) && isIntegerLiteral(typeErr.Value) {
			message = fmt.Sprintf("%s is out of range of int", field)
		}
		return errs.NewBadRequestError(message, true, nil, []errs.FieldError{{Field: field, Error: message}}, nil)
	}

	// Path and query params that do not parse as numbers.
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		message := fmt.Sprintf("%q is not a valid number", numErr.Num)
		if errors.Is(numErr.Err, strconv.ErrRange) {
			message = fmt.Sprintf("%s is out of range of int", numErr.Num)
		}
		return errs.NewBadRequestError(message, true, nil, nil, nil)
	}

	return errs.NewBadRequestError(MalformedBodyMessage, true, nil, nil, nil)
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func isIntKind(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// isIntegerLiteral reports whether an UnmarshalTypeError value such as
// "number 2147483648" is a whole number that simply did not fit.
func isIntegerLiteral(value string) bool {
	literal, ok := strings.CutPrefix(value, "number ")
	if !ok || literal == "" {
		return false
	}
	return !strings.ContainsAny(literal, ".eE")
}
