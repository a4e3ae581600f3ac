package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrAcquisitionFailed means the upstream results or schedule source
	// could not be read; the ledger is left untouched when this happens.
	ErrAcquisitionFailed = errors.New("acquisition failed")
)
