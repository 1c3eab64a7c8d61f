package errors

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrTimeout is returned by bounded calls whose timer fired before the operation settled.
var ErrTimeout = &AppError{Code: ErrCodeTimeout, Message: "operation timed out"}

// IsRetryable reports whether err is a transient failure worth queueing for a later retry:
// timeouts, network failures, unreachable Postgres, and HTTP 5xx/429 responses that adapters
// classify as unavailable. Validation and auth failures are never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if IsRetryable(e) {
				return true
			}
		}
		return false
	}
	switch GetCode(err) {
	case ErrCodeTimeout, ErrCodeUnavailable:
		return true
	case ErrCodeValidation, ErrCodeInvalidCredentials, ErrCodeEmailNotConfirmed,
		ErrCodeUnauthorized, ErrCodeForbidden, ErrCodeNotFound, ErrCodeConflict, ErrCodeCanceled:
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}
