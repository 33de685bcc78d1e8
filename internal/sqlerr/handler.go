package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoRowsMessage is returned when a lookup matched nothing.
const NoRowsMessage = "requested data does not exist"

// constraintMessages holds client messages for the named constraints of
// our schema. Unlisted constraints fall back to a generated message.
var constraintMessages = map[string]string{
	"members_email_key":                   "duplicate email exists",
	"products_price_check":                "price must be a positive integer",
	"cart_items_quantity_check":           "quantity must be at least 1",
	"cart_items_member_id_product_id_key": "product is already in the cart",
	"orders_details_quantity_check":       "quantity must be at least 1",
}

var uniqueConstraintColumn = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the Code of err.
//
// It walks the error chain looking for an already converted *Error first,
// then for the raw *pgconn.PgError returned by pgx. Errors that came from
// neither, including pgx.ErrNoRows, are Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}
	return Other
}

// ConvertPgError copies the fields of a raw server error that the message
// builders need and classifies its SQLSTATE and severity. The original
// error stays reachable through Unwrap.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds the machine readable code of the response.
//
// Output format:
//
//	<ENTITY>_<ACTION>
//
// Example:
//
//	members + UniqueViolation => MEMBER_ALREADY_EXISTS
//
// The entity is the singular table name, or RECORD when the server did not
// report a table.
func generateErrorCode(tableName string, errType Code) string {
	domain := "RECORD"
	if tableName != "" {
		domain = strings.ToUpper(singular(tableName))
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, NumericOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the client facing message.
//
// Named constraints of our schema use the fixed messages of
// constraintMessages. Everything else is phrased from the table and column
// the server reported, e.g. "referenced product does not exist".
func formatUserFriendlyMessage(sqlErr *Error) string {
	if msg, ok := constraintMessages[sqlErr.ConstraintName]; ok {
		return msg
	}

	entityName := strings.ToLower(getEntityName(sqlErr.TableName, sqlErr.ColumnName))
	fieldName := strings.ToLower(humanizeText(sqlErr.ColumnName))

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("referenced %s does not exist", entityName)

	case UniqueViolation:
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			return fmt.Sprintf("%s with this %s already exists", entityName, strings.ToLower(humanizeText(column)))
		}
		return fmt.Sprintf("%s already exists", entityName)

	case NotNullViolation:
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("%s is required", fieldName)

	case CheckViolation, NumericOutOfRange:
		if fieldName != "" {
			return fmt.Sprintf("%s value is not allowed", fieldName)
		}
		return "one or more values are not allowed"

	case StringTooLong:
		if fieldName != "" {
			return fmt.Sprintf("%s is too long", fieldName)
		}
		return "value is too long"

	default:
		return errs.UnhandledErrorMessage
	}
}

// getEntityName prefers the "<entity>_id" column of a foreign key and
// falls back to the singular table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if tableName != "" {
		return humanizeText(singular(tableName))
	}

	return "record"
}

func singular(name string) string {
	if strings.HasSuffix(name, "s") && len(name) > 1 {
		return name[:len(name)-1]
	}
	return name
}

// humanizeText turns "image_url" into "Image Url".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation reads the column out of constraint
// names shaped like unique_<table>_<column> or <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueConstraintColumn.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a database error into an *errs.HTTPError.
//
// It is the last translation step before the global error handler gives up
// and answers with the unhandled error.
//
//   - *errs.HTTPError passes through unchanged
//   - constraint violations and oversized values become 400s with a
//     humanized message and an <ENTITY>_<ACTION> code
//   - no rows becomes a 400 with NoRowsMessage
//   - anything else becomes the generic unhandled error
//
// Foreign key messages are not marked override; clients are expected to
// show their own wording for them.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

		case UniqueViolation, CheckViolation, NumericOutOfRange, StringTooLong:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		default:
			return errs.NewUnhandledError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		code := "DATA_NOT_FOUND"
		return errs.NewBadRequestError(NoRowsMessage, true, &code, nil, nil)
	}

	return errs.NewUnhandledError()
}
