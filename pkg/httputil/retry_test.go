package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySuccessFirstTry(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Retry error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryNonRetryableStopsImmediately(t *testing.T) {
	sentinel := errors.New("bad input")
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return sentinel
	})
	if err != sentinel {
		t.Errorf("Retry error = %v, want sentinel", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryRetryableSucceedsEventually(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("transient")}
		}
		return nil
	})
	if err != nil {
		t.Errorf("Retry error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return &RetryableError{Err: errors.New("transient")}
	})
	if err == nil {
		t.Fatal("want error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Minute, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if err != context.Canceled {
		t.Errorf("Retry error = %v, want context.Canceled", err)
	}
}

func TestRetryableErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &RetryableError{Err: inner}
	if !errors.Is(err, inner) {
		t.Error("RetryableError should unwrap to the inner error")
	}
	if err.Error() != "inner" {
		t.Errorf("Error() = %q, want %q", err.Error(), "inner")
	}
}
