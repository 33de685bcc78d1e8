// Package sqlerr turns database driver errors into client-facing
// HTTPErrors, e.g. a unique violation into a 400 naming the column.
package sqlerr

import "fmt"

// Code is a coarse classification of a PostgreSQL SQLSTATE.
//
// Only the classes the handler reacts to get their own Code; every other
// SQLSTATE is Other and ends up as the generic unhandled error. The raw
// SQLSTATE stays available in Error.DatabaseCode.
type Code string

const (
	Other                Code = "other"
	NotNullViolation     Code = "not_null_violation"
	ForeignKeyViolation  Code = "foreign_key_violation"
	UniqueViolation      Code = "unique_violation"
	CheckViolation       Code = "check_violation"
	ExclusionViolation   Code = "exclusion_violation"
	NumericOutOfRange    Code = "numeric_value_out_of_range"
	StringTooLong        Code = "string_data_right_truncation"
	InvalidTextRep       Code = "invalid_text_representation"
	SerializationFailure Code = "serialization_failure"
	DeadlockDetected     Code = "deadlock_detected"
)

var codeBySQLState = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"22001": StringTooLong,
	"22003": NumericOutOfRange,
	"22P02": InvalidTextRep,
	"40001": SerializationFailure,
	"40P01": DeadlockDetected,
}

// MapCode classifies a SQLSTATE.
func MapCode(sqlState string) Code {
	if code, ok := codeBySQLState[sqlState]; ok {
		return code
	}
	return Other
}

// Severity mirrors the PostgreSQL severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity normalises the server reported severity; unknown values map to ERROR.
func MapSeverity(severity string) Severity {
	switch s := Severity(severity); s {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is a classified database error that keeps the driver error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
