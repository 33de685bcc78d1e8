package model

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/validation"
)

const (
	MinNameLength     = 1
	MaxNameLength     = 10
	MinPasswordLength = 8
	MaxPasswordLength = 20

	// bcrypt refuses input longer than this.
	MaxPasswordBytes = 72
)

// Member is a registered user. Password holds the bcrypt hash.
type Member struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ValidateEmail checks the address format.
func ValidateEmail(email string) error {
	if err := validation.Var(email, "required,email"); err != nil {
		return errs.ErrInvalidEmailFormat
	}
	return nil
}

// ValidateName requires 1 to 10 characters. Callers trim the name first.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return errs.ErrInvalidNameFormat
	}
	return nil
}

// ValidatePassword requires 8 to 20 characters including an uppercase
// letter, a lowercase letter and a special character. The encoded password
// must also fit bcrypt's 72 byte limit.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength || n > MaxPasswordLength || len(password) > MaxPasswordBytes {
		return errs.ErrInvalidPasswordFormat
	}

	var upper, lower, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		case unicode.IsSpace(r):
			return errs.ErrInvalidPasswordFormat
		}
	}

	if !upper || !lower || !special {
		return errs.ErrInvalidPasswordFormat
	}
	return nil
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"invalid email format"`
	Name     string `json:"name" validate:"notblank" msg:"name must not be blank"`
	Password string `json:"password" validate:"notblank" msg:"password must not be blank"`
}

func (r *SignUpRequest) Validate() error {
	return validation.Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"notblank" msg:"email must not be blank"`
	Password string `json:"password" validate:"notblank" msg:"password must not be blank"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type DuplicateEmailRequest struct {
	Email string `json:"email" validate:"required,email" msg:"invalid email format"`
}

func (r *DuplicateEmailRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateNameRequest struct {
	Name string `json:"name" validate:"notblank" msg:"name must not be blank"`
}

func (r *UpdateNameRequest) Validate() error {
	return validation.Struct(r)
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"notblank" msg:"password must not be blank"`
	NewPassword string `json:"newPassword" validate:"notblank" msg:"password must not be blank"`
}

func (r *UpdatePasswordRequest) Validate() error {
	return validation.Struct(r)
}

type DeleteMemberRequest struct {
	Password string `json:"password" validate:"notblank" msg:"password must not be blank"`
}

func (r *DeleteMemberRequest) Validate() error {
	return validation.Struct(r)
}

type MemberInfoResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
