package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrAlreadyExists       = errors.New("entity already exists")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrCreditsExpired      = errors.New("credits have expired")
	ErrVerificationFailed  = errors.New("payment verification failed")
	ErrConflict            = errors.New("concurrent completion detected")
	ErrOTPMismatch         = errors.New("otp does not match")
	ErrRateLimited         = errors.New("too many requests")

	// Storage-layer errors surfaced through repositories
	ErrOperationFailed    = errors.New("storage operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid execution context for query")
)
