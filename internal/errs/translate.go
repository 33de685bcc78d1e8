package errs

import (
	"errors"
	"net/http"
)

// statusByKind is the domain error to HTTP status table.
var statusByKind = map[Kind]int{
	KindInvalid:      http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
}

// loginAction is attached to every 401 so clients know where to go.
var loginAction = &Action{
	Type:    ActionTypeRedirect,
	Message: "authentication required",
	Value:   "/api/login",
}

// Translate maps a DomainError anywhere in err's chain to its HTTPError.
// The second result is false when err carries no DomainError.
func Translate(err error) (*HTTPError, bool) {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return nil, false
	}

	code := domainErr.Code
	switch statusByKind[domainErr.Kind] {
	case http.StatusUnauthorized:
		return NewUnauthorizedError(domainErr.Message, true, &code, loginAction), true
	default:
		return NewBadRequestError(domainErr.Message, true, &code, nil, nil), true
	}
}
