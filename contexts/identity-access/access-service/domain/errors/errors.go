package errors

import "errors"

var (
	ErrInvalidAccessCode   = errors.New("invalid or unknown access code")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInvalidRegistration = errors.New("invalid registration request")
	ErrDisplayNameConflict = errors.New("display name already provisioned")
	ErrInvalidRegistry     = errors.New("invalid access registry")
)
