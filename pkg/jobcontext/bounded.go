package jobcontext

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDeadlineExceeded is returned by Bounded when the operation loses the race
var ErrDeadlineExceeded = errors.New("bounded operation deadline exceeded")

// Bounded runs fn with a derived context that expires after d. Whichever
// happens first wins: fn's result or the deadline. On deadline the derived
// context is cancelled so in-flight work (network calls, DSP loops polling
// ctx) stops instead of running on unobserved.
func Bounded[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	boundedCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- result{err: fmt.Errorf("panic recovered: %v", p)}
			}
		}()
		v, err := fn(boundedCtx)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && boundedCtx.Err() != nil {
			return zero, expired(ctx, boundedCtx, d)
		}
		return r.value, r.err
	case <-boundedCtx.Done():
		return zero, expired(ctx, boundedCtx, d)
	}
}

func expired(parent, bounded context.Context, d time.Duration) error {
	if errors.Is(bounded.Err(), context.DeadlineExceeded) && parent.Err() == nil {
		return fmt.Errorf("%w after %s", ErrDeadlineExceeded, d)
	}
	return fmt.Errorf("bounded operation cancelled: %w", bounded.Err())
}
