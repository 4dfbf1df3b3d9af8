package commands

import (
	"github.com/spf13/cobra"

	"github.com/dynamicalsystem/tin/cmd/tin/handlers"
)

// Job returns the job command.
//
// The job command submits an apply job to an OCI Resource Manager stack and
// polls it until it reaches a terminal state.
func Job() *cobra.Command {
	var (
		paramsFile string
		stackID    string
	)

	cmd := &cobra.Command{
		Use:   "job",
		Short: "Run an apply job on a Resource Manager stack and wait for it",
		Long: `Job submits an auto-approved apply job to the configured Resource
Manager stack and polls its state until the job succeeds, fails or is
canceled. When the job fails, the error lines from its logs are printed.

Example:
  tin job -p params.yaml
  tin job --stack ocid1.ormstack.oc1..example`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Job(cmd.Context(), paramsFile, stackID)
		},
	}

	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "Path to YAML parameter file")
	cmd.Flags().StringVar(&stackID, "stack", "", "Resource Manager stack OCID (overrides configuration)")

	return cmd
}
