package favorites

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNoEmptyString is returned when hashing an empty password
var ErrNoEmptyString = errors.New("password must not be empty")

// ErrMismatchedHashAndPassword is the uniform bcrypt mismatch result
var ErrMismatchedHashAndPassword = errors.New("mismatched password and hash")

// ErrInvalidCredentials covers both unknown email and wrong password at
// login. The two cases are deliberately indistinguishable so the endpoint
// cannot be used to enumerate accounts.
var ErrInvalidCredentials = goerrors.New("incorrect email or password", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenInvalid is the single failure kind for token decoding. Expired,
// malformed, bad signature, wrong algorithm, and missing subject all
// collapse here; the distinction is logged, never surfaced.
var ErrTokenInvalid = goerrors.New("could not validate credentials", goerrors.CategoryAuth).
	WithTextCode("INVALID_TOKEN").
	WithCode(goerrors.CodeUnauthorized)

// ErrUnauthenticated rejects a protected request at the guard
var ErrUnauthenticated = goerrors.New("could not validate credentials", goerrors.CategoryAuth).
	WithTextCode("UNAUTHENTICATED").
	WithCode(goerrors.CodeUnauthorized)

// ErrDuplicateEmail is returned when registering an email that exists
var ErrDuplicateEmail = goerrors.New("email already registered", goerrors.CategoryConflict).
	WithTextCode("DUPLICATE_EMAIL").
	WithCode(goerrors.CodeConflict)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrIncorrectPassword is returned by the password-change flow when the
// old password does not verify. Kept generic on purpose.
var ErrIncorrectPassword = goerrors.New("incorrect password", goerrors.CategoryBadInput).
	WithTextCode("INCORRECT_PASSWORD").
	WithCode(goerrors.CodeBadRequest)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsDuplicateKeyError detects unique constraint violations from the driver
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}
