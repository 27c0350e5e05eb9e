package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// User-facing messages. The login and admin-login messages are shared by
// the "unknown identity" and "wrong password" paths on purpose: callers
// must not be able to tell registered emails apart from unregistered ones.
// The tenant-domain messages keep the Spanish wording the product ships
// with; they are presentation strings, not internal codes.
const (
	MsgUserExists              = "User already exists"
	MsgInvalidUserCredentials  = "User/Password not valid"
	MsgInvalidAdminCredentials = "Email/Contraseña no válidos"
	MsgInvalidToken            = "Invalid token"

	msgDuplicateAliasPrefix        = "Ya existe una aerolínea con el alias: "
	msgDuplicateAirlineEmailPrefix = "Ya existe una aerolínea registrada con el email: "
	msgDuplicateAdminEmailPrefix   = "Ya existe un administrador con el email: "
)

// ErrUserExists is returned when registering an email that already has a user
var ErrUserExists = goerrors.New(MsgUserExists, goerrors.CategoryConflict).
	WithTextCode("USER_EXISTS")

// ErrInvalidUserCredentials covers both unknown emails and wrong passwords
var ErrInvalidUserCredentials = goerrors.New(MsgInvalidUserCredentials, goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS")

// ErrInvalidAdminCredentials is the admin counterpart of ErrInvalidUserCredentials
var ErrInvalidAdminCredentials = goerrors.New(MsgInvalidAdminCredentials, goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS")

// ErrInvalidToken covers bad signatures, expired tokens, and malformed
// tokens alike; the single message avoids leaking which check failed.
var ErrInvalidToken = goerrors.New(MsgInvalidToken, goerrors.CategoryAuth).
	WithTextCode("INVALID_TOKEN")

// ErrNoEmptyString is returned when hashing an empty secret
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode("EMPTY_PASSWORD")

// ErrMismatchedHashAndPassword is the uniform hash verification failure
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH")

// NewDuplicateAliasError reports a tenant alias collision.
func NewDuplicateAliasError(alias string) *goerrors.Error {
	return goerrors.New(msgDuplicateAliasPrefix+alias, goerrors.CategoryConflict).
		WithTextCode("DUPLICATE_ALIAS").
		WithMetadata(map[string]any{"alias": alias})
}

// NewDuplicateAirlineEmailError reports an airline contact email collision.
func NewDuplicateAirlineEmailError(email string) *goerrors.Error {
	return goerrors.New(msgDuplicateAirlineEmailPrefix+email, goerrors.CategoryConflict).
		WithTextCode("DUPLICATE_AIRLINE_EMAIL").
		WithMetadata(map[string]any{"contact_email": email})
}

// NewDuplicateAdminEmailError reports an administrator email collision.
func NewDuplicateAdminEmailError(email string) *goerrors.Error {
	return goerrors.New(msgDuplicateAdminEmailPrefix+email, goerrors.CategoryConflict).
		WithTextCode("DUPLICATE_ADMIN_EMAIL").
		WithMetadata(map[string]any{"admin_email": email})
}

// IsUniqueViolation will check for a store-level unique constraint error.
// The duplicate pre-checks are advisory; a racing insert surfaces here and
// gets mapped to the same duplicate failure the pre-check would report.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
