// Package terraform models the IaC executor as an abstract capability.
//
// The production Runner shells out to the real terraform binary through
// hashicorp/terraform-exec; tests script a MockExecutor with canned event
// sequences so the retry controller can be exercised without a cloud account.
package terraform

import (
	"context"
	"encoding/json"
)

// InitOptions configures workspace initialization.
type InitOptions struct {
	// StatePath is the local backend state file location.
	StatePath string
}

// ApplyOutput carries everything observed during one apply invocation.
// It is populated even when apply fails.
type ApplyOutput struct {
	Events []Event
	Stderr string
}

// ErrorMessages returns the messages of all error-level events.
func (o *ApplyOutput) ErrorMessages() []string {
	if o == nil {
		return nil
	}
	var msgs []string
	for _, e := range o.Events {
		if e.Level == LevelError {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// OutputValue is a single terraform output.
type OutputValue struct {
	Sensitive bool
	Value     json.RawMessage
}

// Executor is the abstract IaC execution capability.
type Executor interface {
	// Init prepares the workspace and backend state location. It must be
	// idempotent: an already-initialized workspace is left alone.
	Init(ctx context.Context, opts InitOptions) error

	// Validate checks the configuration without touching remote state.
	Validate(ctx context.Context) error

	// Apply runs an auto-approved apply and returns the structured event
	// stream plus raw stderr. On failure the returned output is still
	// populated alongside the error.
	Apply(ctx context.Context) (*ApplyOutput, error)

	// Destroy removes managed resources; a non-empty target restricts the
	// destroy to that single resource address.
	Destroy(ctx context.Context, target string) error

	// Output returns the root module output values.
	Output(ctx context.Context) (map[string]OutputValue, error)
}
