// Package clock abstracts time for components that wait on fixed intervals,
// so tests can simulate elapsed time without real delays.
package clock

import (
	"context"
	"time"
)

// Clock provides the current time and context-aware sleeping.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is cancelled, whichever comes first.
	// It returns ctx.Err() when cancelled.
	Sleep(ctx context.Context, d time.Duration) error
}

// Real is a Clock backed by the system clock.
type Real struct{}

// Now returns the current system time.
func (Real) Now() time.Time { return time.Now() }

// Sleep waits for d, honoring context cancellation.
func (Real) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Fake is a Clock for tests. Sleeps return immediately and are recorded;
// Now advances by each slept duration.
type Fake struct {
	Current time.Time
	Slept   []time.Duration

	// SleepErr, if set, is returned by the next Sleep call. Used to
	// simulate cancellation at a sleep boundary.
	SleepErr error
}

// Now returns the fake current time.
func (f *Fake) Now() time.Time { return f.Current }

// Sleep records d and advances the fake time without blocking.
func (f *Fake) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.SleepErr != nil {
		err := f.SleepErr
		f.SleepErr = nil
		return err
	}
	f.Slept = append(f.Slept, d)
	f.Current = f.Current.Add(d)
	return nil
}
