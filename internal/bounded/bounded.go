// Package bounded races remote calls against a timer.
//
// A bounded call runs the operation with a child context. If the timer wins, the child
// context is cancelled and a timeout error is returned; the operation may still have
// produced its remote side effect, so callers must not assume it did not happen.
package bounded

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
)

type result[T any] struct {
	val T
	err error
}

// Call runs fn and returns its outcome, or a timeout AppError if d elapses first.
// A non-positive d disables the timer. Cancellation of ctx is reported as canceled
// (or timeout when ctx hit its own deadline).
func Call[T any](ctx context.Context, op string, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, contextError(op, err)
	}

	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan result[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result[T]{err: apperrors.Internalf("%s panicked: %v", op, r)}
			}
		}()
		v, err := fn(cctx)
		done <- result[T]{val: v, err: err}
	}()

	var timeout <-chan time.Time
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case r := <-done:
		if r.err != nil && ctx.Err() != nil {
			return zero, contextError(op, ctx.Err())
		}
		return r.val, r.err
	case <-timeout:
		// Prefer an outcome that settled in the same instant.
		select {
		case r := <-done:
			return r.val, r.err
		default:
		}
		return zero, apperrors.Wrap(context.DeadlineExceeded, apperrors.ErrCodeTimeout, fmt.Sprintf("%s timed out after %s", op, d))
	case <-ctx.Done():
		return zero, contextError(op, ctx.Err())
	}
}

// Do is Call for operations without a result value.
func Do(ctx context.Context, op string, d time.Duration, fn func(context.Context) error) error {
	_, err := Call(ctx, op, d, func(c context.Context) (struct{}, error) {
		return struct{}{}, fn(c)
	})
	return err
}

func contextError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, op+" timed out")
	}
	return apperrors.Wrap(err, apperrors.ErrCodeCanceled, op+" canceled")
}
