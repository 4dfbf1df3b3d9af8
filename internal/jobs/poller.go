// Package jobs submits Resource Manager apply jobs and waits for them to
// reach a terminal state.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oracle/oci-go-sdk/v65/resourcemanager"

	"github.com/dynamicalsystem/tin/internal/observe"
	"github.com/dynamicalsystem/tin/internal/platform/oci"
	"github.com/dynamicalsystem/tin/internal/util/clock"
)

// Terminal job outcomes.
var (
	ErrJobFailed   = errors.New("job failed")
	ErrJobCanceled = errors.New("job canceled")
)

// errorLineMarker tags the lines of a failed job's log that carry the actual
// provisioning error, as written by the Resource Manager log format.
const errorLineMarker = "[INFO] Error:"

// Result is the terminal state of a job plus, on failure, the error lines
// extracted from its logs.
type Result struct {
	Job        resourcemanager.Job
	ErrorLines []string
}

// Poller drives an async Resource Manager job to completion.
type Poller struct {
	api      oci.JobManager
	clock    clock.Clock
	observer observe.Observer
	interval time.Duration
}

// NewPoller builds a Poller that queries job state every interval.
func NewPoller(api oci.JobManager, clk clock.Clock, observer observe.Observer, interval time.Duration) *Poller {
	return &Poller{
		api:      api,
		clock:    clk,
		observer: observer.WithFields(map[string]string{"component": "jobs"}),
		interval: interval,
	}
}

// Submit creates an auto-approved apply job on the stack.
func (p *Poller) Submit(ctx context.Context, stackID string) (resourcemanager.Job, error) {
	displayName := fmt.Sprintf("apply-%s", p.clock.Now().UTC().Format("20060102-150405"))
	job, err := p.api.CreateApplyJob(ctx, stackID, displayName)
	if err != nil {
		return resourcemanager.Job{}, err
	}
	p.observer.Printf("submitted apply job %s (%s)", deref(job.Id), displayName)
	return job, nil
}

// Await polls the job until it reaches a terminal state. Non-terminal states
// are only observed, never branched on, so new intermediate states the
// service introduces pass through harmlessly. On failure the job's logs are
// fetched and the marked error lines returned alongside ErrJobFailed.
func (p *Poller) Await(ctx context.Context, jobID string) (*Result, error) {
	var job resourcemanager.Job
	for {
		if err := p.clock.Sleep(ctx, p.interval); err != nil {
			return nil, err
		}

		var err error
		job, err = p.api.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}

		p.observer.Event(observe.Event{
			Type:     observe.EventJobPolled,
			Phase:    "job",
			Resource: jobID,
			Message:  fmt.Sprintf("job state: %s", job.LifecycleState),
		})

		if isTerminal(job.LifecycleState) {
			break
		}
	}

	switch job.LifecycleState {
	case resourcemanager.JobLifecycleStateSucceeded:
		return &Result{Job: job}, nil

	case resourcemanager.JobLifecycleStateFailed:
		logs, err := p.api.GetJobLogs(ctx, jobID)
		if err != nil {
			return &Result{Job: job}, fmt.Errorf("%w: could not fetch logs: %v", ErrJobFailed, err)
		}
		lines := ExtractErrorLines(logs)
		return &Result{Job: job, ErrorLines: lines}, ErrJobFailed

	default:
		return &Result{Job: job}, ErrJobCanceled
	}
}

// Run submits a job and waits for it.
func (p *Poller) Run(ctx context.Context, stackID string) (*Result, error) {
	job, err := p.Submit(ctx, stackID)
	if err != nil {
		return nil, err
	}
	if job.Id == nil {
		return nil, errors.New("job created without an id")
	}
	return p.Await(ctx, *job.Id)
}

// ExtractErrorLines returns the log lines carrying the error marker, in the
// order they appear.
func ExtractErrorLines(logs string) []string {
	var lines []string
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(line, errorLineMarker) {
			lines = append(lines, line)
		}
	}
	return lines
}

func isTerminal(state resourcemanager.JobLifecycleStateEnum) bool {
	switch state {
	case resourcemanager.JobLifecycleStateSucceeded,
		resourcemanager.JobLifecycleStateFailed,
		resourcemanager.JobLifecycleStateCanceled:
		return true
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
