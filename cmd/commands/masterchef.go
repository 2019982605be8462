package commands

import (
	"github.com/spf13/cobra"

	"github.com/stratops/stratops"
)

func buildMasterChefCmd(e *env) *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "masterchef",
		Short: "Dump the pools and reward rate of a masterchef profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			chef, err := e.cfg.MasterChef(profile)
			if err != nil {
				return err
			}

			client, err := e.readClient(cmd.Context())
			if err != nil {
				return err
			}

			report, err := stratops.NewMasterChefInspector(client).Inspect(cmd.Context(), chef)
			if err != nil {
				return err
			}

			return report.Render(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Masterchef profile name (panda, bird, xava, gondola)")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}
