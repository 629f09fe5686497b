package jobcontext

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCheckInBeginAttachesMetadata(t *testing.T) {
	ctx, cancel := CheckInBegin(context.Background(), "sess-1", "user-1", time.Minute)
	defer cancel()

	meta := GetCheckInMetadata(ctx)
	if meta.SessionID != "sess-1" || meta.UserID != "user-1" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if meta.StartTime.IsZero() {
		t.Fatal("expected start time to be set")
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected a deadline on the check-in context")
	}
}

func TestBoundedReturnsResult(t *testing.T) {
	got, err := Bounded(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestBoundedPropagatesError(t *testing.T) {
	want := errors.New("decode failed")
	_, err := Bounded(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestBoundedCancelsLosingBranch(t *testing.T) {
	cancelled := make(chan struct{})
	_, err := Bounded(context.Background(), 20*time.Millisecond, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		close(cancelled)
		return "", ctx.Err()
	})
	if !errors.Is(err, ErrDeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("losing branch was not cancelled")
	}
}

func TestBoundedParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Bounded(parent, time.Second, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrDeadlineExceeded) {
		t.Fatalf("parent cancellation should not be reported as deadline: %v", err)
	}
}

func TestBoundedRecoversPanic(t *testing.T) {
	_, err := Bounded(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		panic("index out of range")
	})
	if err == nil {
		t.Fatal("expected panic to surface as error")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("error, status code: 503, message: overloaded"), true},
		{errors.New("429 Too Many Requests"), true},
		{fmt.Errorf("wrapped: %w", errors.New("service unavailable")), true},
		{errors.New("error, status code: 401, message: invalid api key"), false},
		{errors.New("failed to parse JSON response"), false},
	}

	for _, tt := range tests {
		if got := IsRetryableError(tt.err); got != tt.want {
			t.Errorf("IsRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
