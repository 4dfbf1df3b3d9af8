package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dynamicalsystem/tin/internal/jobs"
)

// Job handles the job command.
//
// It submits an apply job to the configured Resource Manager stack and waits
// for a terminal state. Failed jobs print the error lines extracted from
// their logs before returning the failure.
func Job(ctx context.Context, paramsFile, stackID string) error {
	cfg, err := loadConfig(paramsFile)
	if err != nil {
		return err
	}
	if stackID != "" {
		cfg.StackID = stackID
	}
	if cfg.StackID == "" {
		return errors.New("no stack configured: set TIN_STACK_ID, stack_id in the parameter file, or --stack")
	}

	api, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	poller := jobs.NewPoller(api, newClock(), newObserver(), cfg.PollInterval)
	result, err := poller.Run(ctx, cfg.StackID)
	switch {
	case errors.Is(err, jobs.ErrJobFailed):
		if len(result.ErrorLines) == 0 {
			log.Print("Job failed without marked error lines in its logs")
		}
		for _, line := range result.ErrorLines {
			log.Print(line)
		}
		return fmt.Errorf("apply job on stack %s: %w", cfg.StackID, err)

	case errors.Is(err, jobs.ErrJobCanceled):
		// Cancellation is a terminal record, not a failure of this tool.
		log.Printf("Apply job on stack %s was canceled", cfg.StackID)
		return nil

	case err != nil:
		return err
	}

	log.Printf("Apply job on stack %s succeeded", cfg.StackID)
	return nil
}
