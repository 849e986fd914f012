package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks transport failures talking to a remote backend.
var ErrNetwork = errors.New("network error")

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry parameters for RetryWithBackoff.
var (
	RetryAttempts = 3
	RetryDelay    = 100 * time.Millisecond
)

// RetryWithBackoff calls fn up to RetryAttempts times, doubling the delay
// after each retryable failure. Other errors return immediately.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := RetryDelay
	var lastErr error

	for i := range RetryAttempts {
		err := fn()
		if err == nil {
			return nil
		}
		if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < RetryAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
