package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/dynamicalsystem/tin/internal/deploy"
)

// Deploy handles the deploy command.
//
// It resolves configuration, prepares the state directory and runs the
// deployer until the workspace is fully applied or a terminal failure is
// classified. A maxAttempts of -1 keeps the configured value.
func Deploy(ctx context.Context, paramsFile string, maxAttempts int) error {
	cfg, err := loadConfig(paramsFile)
	if err != nil {
		return err
	}
	if maxAttempts >= 0 {
		cfg.MaxAttempts = maxAttempts
	}

	if _, err := os.Stat(cfg.TerraformDir); err != nil {
		return fmt.Errorf("terraform workspace %s not found: %w", cfg.TerraformDir, err)
	}
	if err := os.MkdirAll(cfg.StateDir(), 0o750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	exec, err := newExecutor(cfg)
	if err != nil {
		return err
	}

	deployer := deploy.New(exec, newClock(), newObserver(), cfg)
	result, err := deployer.Run(ctx)
	if err != nil {
		if last := result.LastAttempt(); last != nil {
			for _, line := range last.Errors {
				log.Print(line)
			}
			if last.Stderr != "" {
				log.Print(last.Stderr)
			}
		}
		return err
	}

	log.Printf("Deployment succeeded after %d attempt(s)", len(result.Attempts))
	printOutputs(result)
	return nil
}

func printOutputs(result *deploy.Result) {
	if len(result.Outputs) == 0 {
		return
	}
	names := make([]string, 0, len(result.Outputs))
	for name := range result.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out := result.Outputs[name]
		if out.Sensitive {
			log.Printf("  %s = (sensitive)", name)
			continue
		}
		log.Printf("  %s = %s", name, out.Value)
	}
}
