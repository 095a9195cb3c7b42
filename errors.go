package auth

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeAccountInactive    = "ACCOUNT_INACTIVE"
	TextCodeUsernameTaken      = "USERNAME_TAKEN"
	TextCodeEmailTaken         = "EMAIL_TAKEN"
	TextCodeIdentityNotFound   = "IDENTITY_NOT_FOUND"
	TextCodeTokenInvalid       = "TOKEN_INVALID"
	TextCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

// ErrInvalidCredentials is returned for an unknown username and for a
// wrong password alike, so callers cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid username or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrAccountInactive is returned when credentials check out but the
// account has been deactivated.
var ErrAccountInactive = errors.New("user account is inactive", errors.CategoryAuth).
	WithTextCode(TextCodeAccountInactive).
	WithCode(errors.CodeForbidden)

// ErrUsernameTaken is returned when registering a username that exists.
var ErrUsernameTaken = errors.New("username already exists", errors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(errors.CodeConflict)

// ErrEmailTaken is returned when registering an email that is registered.
var ErrEmailTaken = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeConflict)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeIdentityNotFound).
	WithCode(errors.CodeNotFound)

// ErrTokenInvalid covers signature mismatch, malformed payload, and
// expiry in one value. The codec deliberately does not say which.
var ErrTokenInvalid = errors.New("invalid or expired token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the hasher-level mismatch error
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// WrapStorageError marks err as a store outage, keeping it distinct from
// not-found results.
func WrapStorageError(err error) error {
	return errors.Wrap(err, errors.CategoryInternal, "credential store unavailable").
		WithTextCode(TextCodeStorageUnavailable)
}

// ensureStorageError returns err if the store already marked it as an
// outage, wrapping it otherwise. Keeps adapters honest without double
// wrapping the well-behaved ones.
func ensureStorageError(err error) error {
	if IsStorageUnavailable(err) {
		return err
	}
	return WrapStorageError(err)
}

// IsStorageUnavailable reports whether err represents a store outage
// rather than a domain outcome.
func IsStorageUnavailable(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeStorageUnavailable
}
