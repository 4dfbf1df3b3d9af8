package deploy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dynamicalsystem/tin/internal/config"
	"github.com/dynamicalsystem/tin/internal/observe"
	"github.com/dynamicalsystem/tin/internal/terraform"
	"github.com/dynamicalsystem/tin/internal/util/clock"
)

// State is the deployer's lifecycle state.
type State string

const (
	StateInitializing State = "initializing"
	StateValidating   State = "validating"
	StateApplying     State = "applying"
	StateRetrying     State = "retrying"
	StateSucceeded    State = "succeeded"
	StateAborted      State = "aborted"
)

// Attempt records one apply invocation.
type Attempt struct {
	Number         int
	StartedAt      time.Time
	Errors         []string
	Stderr         string
	Classification Classification
}

// Result is the final outcome of a deployment run.
type Result struct {
	State    State
	Attempts []Attempt
	Outputs  map[string]terraform.OutputValue
}

// LastAttempt returns the most recent attempt, or nil before the first apply.
func (r *Result) LastAttempt() *Attempt {
	if len(r.Attempts) == 0 {
		return nil
	}
	return &r.Attempts[len(r.Attempts)-1]
}

// Deployer runs terraform applies until one succeeds, retrying capacity
// failures and aborting on anything else.
type Deployer struct {
	exec     terraform.Executor
	clock    clock.Clock
	observer observe.Observer

	statePath     string
	cleanupTarget string
	retryInterval time.Duration
	maxAttempts   int
}

// New builds a Deployer from the resolved configuration.
func New(exec terraform.Executor, clk clock.Clock, observer observe.Observer, cfg *config.Config) *Deployer {
	return &Deployer{
		exec:          exec,
		clock:         clk,
		observer:      observer.WithFields(map[string]string{"component": "deploy"}),
		statePath:     cfg.StatePath(),
		cleanupTarget: cfg.CleanupTarget,
		retryInterval: cfg.RetryInterval,
		maxAttempts:   cfg.MaxAttempts,
	}
}

// Run initializes and validates the workspace, then applies until success.
// Capacity failures tear down the partially created instance, wait out the
// retry interval and try again; service-limit and fatal failures abort with
// the attempt's diagnostics. A maxAttempts of zero retries without bound.
func (d *Deployer) Run(ctx context.Context) (*Result, error) {
	result := &Result{State: StateInitializing}

	if err := d.exec.Init(ctx, terraform.InitOptions{StatePath: d.statePath}); err != nil {
		result.State = StateAborted
		return result, err
	}

	result.State = StateValidating
	if err := d.exec.Validate(ctx); err != nil {
		result.State = StateAborted
		return result, err
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			result.State = StateAborted
			return result, err
		}

		result.State = StateApplying
		d.observer.Event(observe.Event{
			Type:    observe.EventAttemptStarted,
			Phase:   "apply",
			Message: fmt.Sprintf("starting apply attempt %d", attempt),
			Fields:  map[string]string{"attempt": fmt.Sprintf("%d", attempt)},
		})

		startedAt := d.clock.Now()
		out, applyErr := d.exec.Apply(ctx)

		record := Attempt{
			Number:    attempt,
			StartedAt: startedAt,
			Errors:    out.ErrorMessages(),
		}
		if out != nil {
			record.Stderr = out.Stderr
		}

		if applyErr == nil {
			result.Attempts = append(result.Attempts, record)
			result.State = StateSucceeded
			d.observer.Event(observe.Event{
				Type:    observe.EventAttemptSucceeded,
				Phase:   "apply",
				Message: fmt.Sprintf("apply succeeded on attempt %d", attempt),
			})
			outputs, err := d.exec.Output(ctx)
			if err != nil {
				d.observer.Printf("warning: could not read outputs: %v", err)
			} else {
				result.Outputs = outputs
			}
			return result, nil
		}

		record.Classification = Classify(diagnostics(record, applyErr))
		result.Attempts = append(result.Attempts, record)

		d.observer.Event(observe.Event{
			Type:    observe.EventAttemptFailed,
			Phase:   "apply",
			Message: fmt.Sprintf("attempt %d failed: %s", attempt, record.Classification.Category),
			Fields: map[string]string{
				"attempt":  fmt.Sprintf("%d", attempt),
				"category": record.Classification.Category.String(),
			},
		})

		switch record.Classification.Category {
		case CategoryCapacity:
			if d.maxAttempts > 0 && attempt >= d.maxAttempts {
				result.State = StateAborted
				return result, fmt.Errorf("gave up after %d capacity failures: %w", attempt, applyErr)
			}
			d.cleanupPartialInstance(ctx)
			d.observer.Event(observe.Event{
				Type:    observe.EventAttemptRetrying,
				Phase:   "apply",
				Message: fmt.Sprintf("capacity unavailable (%q), retrying in %s", record.Classification.Indicator, d.retryInterval),
			})
			result.State = StateRetrying
			if err := d.clock.Sleep(ctx, d.retryInterval); err != nil {
				result.State = StateAborted
				return result, err
			}

		case CategoryServiceLimit:
			result.State = StateAborted
			return result, fmt.Errorf("service limit reached (%q), manual intervention required: %w",
				record.Classification.Indicator, applyErr)

		default:
			result.State = StateAborted
			return result, fmt.Errorf("apply failed: %w", applyErr)
		}
	}
}

// cleanupPartialInstance destroys the instance resource left behind by a
// capacity failure so the next attempt starts clean. Failures here are logged
// and ignored: the next apply will reconcile whatever state remains.
func (d *Deployer) cleanupPartialInstance(ctx context.Context) {
	if d.cleanupTarget == "" {
		return
	}
	if err := d.exec.Destroy(ctx, d.cleanupTarget); err != nil {
		d.observer.Printf("warning: cleanup of %s failed: %v", d.cleanupTarget, err)
	}
}

// diagnostics flattens an attempt's error output into one classifiable blob.
func diagnostics(a Attempt, applyErr error) string {
	parts := make([]string, 0, len(a.Errors)+2)
	parts = append(parts, a.Errors...)
	if a.Stderr != "" {
		parts = append(parts, a.Stderr)
	}
	if applyErr != nil {
		parts = append(parts, applyErr.Error())
	}
	return strings.Join(parts, "\n")
}
