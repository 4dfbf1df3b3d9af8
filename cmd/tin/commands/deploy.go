package commands

import (
	"github.com/spf13/cobra"

	"github.com/dynamicalsystem/tin/cmd/tin/handlers"
)

// Deploy returns the deploy command.
//
// The deploy command runs terraform against the local workspace until the
// free-tier instance comes up, retrying capacity failures and aborting on
// service limits.
func Deploy() *cobra.Command {
	var (
		paramsFile  string
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision the instance, retrying while capacity is unavailable",
		Long: `Deploy initializes and validates the terraform workspace, then applies
until the configuration is fully provisioned.

Free-tier capacity in OCI comes and goes. When an apply fails because no
capacity is available, the partially created instance is destroyed, the
retry interval elapses and the apply runs again. Service-limit and other
errors abort immediately with the attempt's diagnostics.

Example:
  tin deploy -p params.yaml
  tin deploy --max-attempts 10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), paramsFile, maxAttempts)
		},
	}

	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "Path to YAML parameter file")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", -1, "Abort after this many capacity retries (0 = unlimited)")

	return cmd
}
