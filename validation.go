package auth

import (
	stderrors "errors"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// SignupPayload is the registration request body
type SignupPayload struct {
	Email    string `form:"email" json:"email"`
	Name     string `form:"name" json:"name"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload. The email is normalized first so
// padded or mixed-case addresses pass the same rules the store applies.
func (r SignupPayload) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	err := errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Name, validation.Required, validation.Length(3, 100)),
			validation.Field(
				&r.Password,
				validation.Required,
				validation.Length(8, 100),
				validation.By(validatePasswordComplexity),
			),
		)
	}, "Invalid signup request payload")
	if err == nil {
		return nil
	}
	return err
}

// SigninPayload is the credential verification request body
type SigninPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r SigninPayload) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	err := errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid signin request payload")
	if err == nil {
		return nil
	}
	return err
}

// validatePasswordComplexity requires at least one letter, one digit, and one
// symbol. Expressed as a rule function since RE2 has no lookaheads.
func validatePasswordComplexity(value any) error {
	password, _ := value.(string)
	if password == "" {
		return nil
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	var missing []string
	if !hasLetter {
		missing = append(missing, "a letter")
	}
	if !hasDigit {
		missing = append(missing, "a digit")
	}
	if !hasSymbol {
		missing = append(missing, "a special character")
	}

	if len(missing) > 0 {
		return stderrors.New("must contain " + strings.Join(missing, " and "))
	}

	return nil
}
