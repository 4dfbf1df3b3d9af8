package commands

import (
	"github.com/spf13/cobra"

	"github.com/dynamicalsystem/tin/cmd/tin/handlers"
)

// Cleanup returns the cleanup command.
//
// The cleanup command deletes leftover managed VCNs and their child
// resources in dependency order: subnets, route tables, security lists,
// internet gateways, NAT gateways and service gateways, then the VCN itself.
// VCNs still in use by a live instance are left intact.
func Cleanup() *cobra.Command {
	var (
		paramsFile  string
		networkName string
		assumeYes   bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete leftover VCNs and their child resources",
		Long: `Cleanup finds VCNs carrying the managed network name and tears them
down. Before touching anything it checks whether a live instance still has a
VNIC in the VCN; such VCNs are reported and skipped entirely.

Child resources are deleted in dependency order. The default route table and
security list are skipped, the service removes them with the VCN.

Example:
  tin cleanup -p params.yaml
  tin cleanup --yes

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cleanup(cmd.Context(), paramsFile, networkName, assumeYes)
		},
	}

	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "Path to YAML parameter file")
	cmd.Flags().StringVar(&networkName, "network", "", "VCN display name to target (overrides configuration)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
