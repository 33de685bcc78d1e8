package sqlerr

import (
	"net/http"
	"testing"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_NoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.Wrap(pgx.ErrNoRows, "find member")))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, NoRowsMessage, httpErr.Message)
}

func TestHandleError_KnownConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "members",
		ConstraintName: "members_email_key",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "MEMBER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "duplicate email exists", httpErr.Message)
}

func TestHandleError_GeneratedUniqueMessage(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "products",
		ConstraintName: "products_name_key",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, "product with this name already exists", httpErr.Message)
}

func TestHandleError_ForeignKey(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		TableName:  "cart_items",
		ColumnName: "product_id",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "referenced product does not exist", httpErr.Message)
}

func TestHandleError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23514",
		TableName:      "products",
		ConstraintName: "products_price_check",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, "price must be a positive integer", httpErr.Message)
}

func TestHandleError_NotNullHasFieldError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		TableName:  "products",
		ColumnName: "image_url",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, "image url is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "image_url", httpErr.Errors[0].Field)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	in := errs.NewNotFoundError("route not found", false, nil)
	assert.Same(t, in, HandleError(in))
}

func TestHandleError_Unknown(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.UnhandledErrorMessage, httpErr.Message)
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert")))
	assert.Equal(t, CheckViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23514"})))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("whatever"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("members_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_members_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("members_pkey"))
}

func TestHandleError_StringTooLong(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:      "22001",
		TableName: "members",
	}

	httpErr := asHTTPError(t, HandleError(errors.Wrap(pgErr, "create member")))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "MEMBER_INVALID", httpErr.Code)
	assert.Equal(t, "value is too long", httpErr.Message)
}
