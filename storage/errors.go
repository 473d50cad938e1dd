package storage

import "errors"

var (
	ErrNotFound    = errors.New("storage: not found")
	ErrInvalidCID  = errors.New("storage: invalid cid")
	ErrCIDMismatch = errors.New("storage: cid mismatch")
	ErrImmutable   = errors.New("storage: immutable object mismatch")
	ErrNoBackends  = errors.New("storage: no backends configured")

	// ErrRejected is returned when a store refuses content it does not accept.
	ErrRejected = errors.New("storage: content rejected")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
