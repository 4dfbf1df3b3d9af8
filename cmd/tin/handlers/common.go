// Package handlers implements the execution logic for CLI commands.
//
// Handlers wire configuration, platform clients and the lifecycle components
// together. Construction goes through package-level factory variables so
// tests can swap in mocks.
package handlers

import (
	"context"

	"github.com/charmbracelet/huh"

	"github.com/dynamicalsystem/tin/internal/config"
	"github.com/dynamicalsystem/tin/internal/observe"
	"github.com/dynamicalsystem/tin/internal/platform/oci"
	"github.com/dynamicalsystem/tin/internal/terraform"
	"github.com/dynamicalsystem/tin/internal/util/clock"
)

// Factory function variables - can be replaced in tests.
var (
	// loadConfig resolves the deployment configuration.
	loadConfig = config.Load

	// newObserver creates the logging sink.
	newObserver = func() observe.Observer {
		return observe.NewConsole()
	}

	// newClock provides time to the waiting loops.
	newClock = func() clock.Clock {
		return clock.Real{}
	}

	// newAPIClient creates an authenticated OCI client.
	newAPIClient = func(cfg *config.Config) (oci.API, error) {
		return oci.NewRealClient(cfg)
	}

	// newExecutor creates the terraform executor for the workspace.
	newExecutor = func(cfg *config.Config) (terraform.Executor, error) {
		return terraform.NewRunner(cfg.TerraformDir, cfg.TFVarEnv())
	}

	// confirm asks the operator to approve a destructive action.
	confirm = func(ctx context.Context, title, description string) (bool, error) {
		approved := false
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(title).
					Description(description).
					Value(&approved),
			),
		).RunWithContext(ctx)
		if err != nil {
			return false, err
		}
		return approved, nil
	}
)
