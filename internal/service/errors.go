package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services matches at least one of
// them with [errors.Is]. Transports map kinds, never the finer errors below.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

var (
	ErrUserAlreadyExists  = fmt.Errorf("%w: username or email already exists", ErrConflict)
	ErrUserNotFound       = fmt.Errorf("%w: user was not found", ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrWrongPassword      = fmt.Errorf("%w: wrong password", ErrUnauthorized)

	ErrTokenIsExpired = fmt.Errorf("%w: token is expired", ErrUnauthorized)
	ErrTokenIsInvalid = fmt.Errorf("%w: token is invalid", ErrUnauthorized)

	ErrEmptyPassword   = fmt.Errorf("%w: password is empty", ErrValidation)
	ErrPasswordTooLong = fmt.Errorf("%w: password is longer than 72 bytes", ErrValidation)

	ErrPasswordHashingFailed = fmt.Errorf("%w: password hashing failed", ErrInternal)
	ErrTokenCreationFailed   = fmt.Errorf("%w: token creation failed", ErrInternal)
)

// Construction errors. These indicate broken configuration and are fatal
// at startup.
var (
	ErrTokenSignKeyIsNotSpecified = errors.New("token sign key is not specified")
	ErrTokenIssuerIsNotSpecified  = errors.New("token issuer is not specified")
)
