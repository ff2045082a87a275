package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCreds     = "AUTH_INVALID_CREDENTIALS"
	TextCodeEmailExists      = "AUTH_EMAIL_EXISTS"
	TextCodeEmptyPassword    = "AUTH_EMPTY_PASSWORD"
	TextCodeStoreUnavailable = "AUTH_STORE_UNAVAILABLE"
	TextCodeTokenExpired     = "AUTH_TOKEN_EXPIRED"
	TextCodeTokenMalformed   = "AUTH_TOKEN_MALFORMED"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password so
// callers cannot probe which emails are registered.
var ErrInvalidCredentials = errors.New("Invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrEmailAlreadyExists is returned when a signup targets an email that
// already has a record, whether detected by the advisory lookup or by the
// unique index at insert time.
var ErrEmailAlreadyExists = errors.New("Email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeEmailExists).
	WithCode(errors.CodeBadRequest)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrStoreUnavailable classifies timeouts and connectivity failures from the
// credential store. The caller-facing message carries no internal detail.
var ErrStoreUnavailable = errors.New("Database connection error - please try again", errors.CategoryOperation).
	WithTextCode(TextCodeStoreUnavailable).
	WithCode(errors.CodeInternal)

// ErrTokenExpired is returned when a bearer token's expiry is in the past.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail to parse or whose
// signature does not verify.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}

	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeTokenMalformed {
		return true
	}

	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsDuplicateKeyError reports whether a store error came from the unique
// index on email. Both the sqlite and postgres drivers report constraint
// violations only through their message text.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// IsStoreUnavailableError reports whether a store error should be classified
// as connectivity rather than a business-rule failure.
func IsStoreUnavailableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeStoreUnavailable {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset")
}
