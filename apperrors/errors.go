package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by the usecase and repository layers.
// Handlers map these onto HTTP responses; everything unmatched is a 500.
var (
	ErrNotFound     = errors.New("record not found")
	ErrForbidden    = errors.New("caller does not own this record")
	ErrInvalidInput = errors.New("invalid input")
	ErrRateLimited  = errors.New("rate limit exceeded")
)

// InvalidInput wraps ErrInvalidInput with the offending field and reason.
func InvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// RateLimited wraps ErrRateLimited with the wait until a token is available.
func RateLimited(retryAfter time.Duration) error {
	return &RateLimitedError{RetryAfter: retryAfter}
}

type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %s", e.RetryAfter)
}

func (e *RateLimitedError) Unwrap() error { return ErrRateLimited }
