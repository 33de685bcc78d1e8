package errs

// Kind groups domain errors by how they are reported to clients.
type Kind int

const (
	// KindInvalid covers rule violations by the caller; reported as 400.
	KindInvalid Kind = iota
	// KindUnauthorized covers missing or bad credentials; reported as 401.
	KindUnauthorized
)

// DomainError is a business rule failure raised by services.
//
// Catalog values are compared by identity, so callers use errors.Is
// against the exported variables below.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func newDomainError(kind Kind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// Members.
var (
	ErrDuplicateMemberEmail  = newDomainError(KindInvalid, "INVALID_MEMBER_EMAIL", "duplicate email exists")
	ErrInvalidEmailFormat    = newDomainError(KindInvalid, "INVALID_MEMBER_EMAIL", "invalid email format")
	ErrMemberNotFound        = newDomainError(KindInvalid, "MEMBER_NOT_FOUND", "member does not exist")
	ErrWrongPassword         = newDomainError(KindInvalid, "WRONG_PASSWORD", "wrong password")
	ErrDuplicateEmail        = newDomainError(KindInvalid, "DUPLICATE_EMAIL", "email must not be duplicated")
	ErrSameName              = newDomainError(KindInvalid, "INVALID_MEMBER_NAME", "cannot change to the same name as the current one")
	ErrInvalidNameFormat     = newDomainError(KindInvalid, "INVALID_MEMBER_NAME", "name must be 1 to 10 characters")
	ErrPasswordMismatch      = newDomainError(KindInvalid, "INVALID_PASSWORD", "does not match the current password")
	ErrSamePassword          = newDomainError(KindInvalid, "INVALID_PASSWORD", "cannot change to the same password as the current one")
	ErrInvalidPasswordFormat = newDomainError(KindInvalid, "INVALID_PASSWORD_FORMAT", "password must be 8 to 20 characters and contain an uppercase letter, a lowercase letter and a special character")
)

// Catalog.
var (
	ErrProductNotFound     = newDomainError(KindInvalid, "INVALID_PRODUCT", "product does not exist")
	ErrCartItemNotFound    = newDomainError(KindInvalid, "INVALID_CART_ITEM", "cart item does not exist")
	ErrNotInMemberCartItem = newDomainError(KindInvalid, "NOT_IN_MEMBER_CART_ITEM", "cart item does not belong to the member")
	ErrOrderNotFound       = newDomainError(KindInvalid, "INVALID_ORDER", "order does not exist")
	ErrEmptyOrder          = newDomainError(KindInvalid, "INVALID_ORDER", "order must contain at least one item")
	ErrDuplicateOrderItem  = newDomainError(KindInvalid, "INVALID_ORDER", "cart item must not be ordered more than once")
)

// Authentication.
var (
	ErrInvalidToken = newDomainError(KindUnauthorized, "INVALID_TOKEN", "invalid token")
	ErrMissingToken = newDomainError(KindUnauthorized, "MISSING_TOKEN", "missing token")
)
