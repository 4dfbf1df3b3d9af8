package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestWithExponentialBackoff_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := WithExponentialBackoff(context.Background(), operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := WithExponentialBackoff(context.Background(), operation, WithInitialDelay(10*time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_MaxRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	maxRetries := 3
	err := WithExponentialBackoff(context.Background(), operation,
		WithMaxRetries(maxRetries),
		WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error after max retries, got nil")
	}
	// MaxRetries counts retries after the first attempt.
	if attempts != maxRetries+1 {
		t.Errorf("Expected %d attempts (1 + %d retries), got: %d", maxRetries+1, maxRetries, attempts)
	}
}

func TestWithExponentialBackoff_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error due to context cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before context check, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_FatalError(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return Fatal(errors.New("fatal error"))
	}

	err := WithExponentialBackoff(context.Background(), operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected fatal error, got nil")
	}
	if !IsFatal(err) {
		t.Errorf("Expected fatal error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt (no retries for fatal error), got: %d", attempts)
	}
}

func TestWithExponentialBackoff_RetryIf(t *testing.T) {
	t.Parallel()

	retryable := errors.New("throttled")

	t.Run("Predicate accepts error", func(t *testing.T) {
		t.Parallel()
		attempts := 0
		operation := func() error {
			attempts++
			if attempts < 2 {
				return retryable
			}
			return nil
		}

		err := WithExponentialBackoff(context.Background(), operation,
			WithInitialDelay(10*time.Millisecond),
			WithRetryIf(func(err error) bool { return errors.Is(err, retryable) }))

		if err != nil {
			t.Errorf("Expected success, got: %v", err)
		}
		if attempts != 2 {
			t.Errorf("Expected 2 attempts, got: %d", attempts)
		}
	})

	t.Run("Predicate rejects error", func(t *testing.T) {
		t.Parallel()
		attempts := 0
		notRetryable := errors.New("bad request")
		operation := func() error {
			attempts++
			return notRetryable
		}

		err := WithExponentialBackoff(context.Background(), operation,
			WithInitialDelay(10*time.Millisecond),
			WithRetryIf(func(err error) bool { return errors.Is(err, retryable) }))

		if !errors.Is(err, notRetryable) {
			t.Errorf("Expected the rejected error back, got: %v", err)
		}
		if attempts != 1 {
			t.Errorf("Expected 1 attempt, got: %d", attempts)
		}
	})
}

func TestFatal(t *testing.T) {
	t.Parallel()
	t.Run("Nil error", func(t *testing.T) {
		t.Parallel()
		if err := Fatal(nil); err != nil {
			t.Errorf("Expected nil, got: %v", err)
		}
	})

	t.Run("Non-nil error", func(t *testing.T) {
		t.Parallel()
		originalErr := errors.New("test error")
		err := Fatal(originalErr)

		if err == nil {
			t.Error("Expected non-nil error")
		}
		if !IsFatal(err) {
			t.Error("Expected error to be fatal")
		}
		if err.Error() != originalErr.Error() {
			t.Errorf("Expected error message %q, got %q", originalErr.Error(), err.Error())
		}
	})
}

func TestFatalError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel error")
	fatalErr := Fatal(sentinel)

	if unwrapped := errors.Unwrap(fatalErr); unwrapped != sentinel {
		t.Errorf("errors.Unwrap() returned %v, want %v", unwrapped, sentinel)
	}
	if !errors.Is(fatalErr, sentinel) {
		t.Error("errors.Is should find sentinel through FatalError.Unwrap()")
	}

	doubleWrapped := fmt.Errorf("context: %w", fatalErr)
	if !errors.Is(doubleWrapped, sentinel) {
		t.Error("errors.Is should find sentinel through double-wrapped FatalError")
	}
	if !IsFatal(doubleWrapped) {
		t.Error("IsFatal should detect FatalError through fmt.Errorf wrapping")
	}
}
