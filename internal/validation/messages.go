package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/go-playground/validator/v10"
)

// extractValidationError renders err as one message plus field errors.
// The message joins every distinct field message with a single space,
// in the order the fields were reported.
func extractValidationError(root reflect.Type, err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &customErrors):
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: ce.Field, Error: ce.Message})
		}
	case errors.As(err, &validationErrors):
		for _, fe := range validationErrors {
			msg, ok := customMessage(root, fe)
			if !ok {
				msg = defaultMessage(fe)
			}
			fieldErrors = append(fieldErrors, errs.FieldError{Field: fe.Field(), Error: msg})
		}
	default:
		return err.Error(), nil
	}

	return joinMessages(fieldErrors), fieldErrors
}

func joinMessages(fieldErrors []errs.FieldError) string {
	seen := make(map[string]bool, len(fieldErrors))
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		if seen[fe.Error] {
			continue
		}
		seen[fe.Error] = true
		messages = append(messages, fe.Error)
	}
	return strings.Join(messages, " ")
}

// customMessage follows the struct namespace of fe from root and returns
// the failing field's `msg` tag.
func customMessage(root reflect.Type, fe validator.FieldError) (string, bool) {
	segments := strings.Split(fe.StructNamespace(), ".")
	if len(segments) < 2 {
		return "", false
	}

	t := root
	for i, segment := range segments[1:] {
		t = elem(t)
		if t.Kind() != reflect.Struct {
			return "", false
		}

		if idx := strings.IndexByte(segment, '['); idx >= 0 {
			segment = segment[:idx]
		}

		field, ok := t.FieldByName(segment)
		if !ok {
			return "", false
		}

		if i == len(segments)-2 {
			msg := field.Tag.Get("msg")
			return msg, msg != ""
		}
		t = field.Type
	}

	return "", false
}

func elem(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	return t
}

func defaultMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "dive":
		return fmt.Sprintf("%s has invalid items", field)
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", field, fe.Tag())
	}
}
