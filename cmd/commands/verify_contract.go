package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratops/stratops"
)

func buildVerifyContractCmd(e *env) *cobra.Command {
	var deploymentPath string

	cmd := &cobra.Command{
		Use:   "verify-contract",
		Short: "Verify a hardhat-deploy deployment on the network's block explorer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.network.Explorer.APIURL == "" {
				return fmt.Errorf("network %s has no explorer configured", e.networkName())
			}

			return stratops.NewContractVerifier(e.network.Explorer).Verify(cmd.Context(), deploymentPath)
		},
	}

	cmd.Flags().StringVar(&deploymentPath, "deployment-file-path", "", "Path to the deployment JSON file")
	_ = cmd.MarkFlagRequired("deployment-file-path")

	return cmd
}
