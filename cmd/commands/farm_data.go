package commands

import (
	"github.com/spf13/cobra"

	"github.com/stratops/stratops"
)

func buildFarmDataCmd(e *env) *cobra.Command {
	var farm string

	cmd := &cobra.Command{
		Use:   "farm-data",
		Short: "Print fees, tokens and pending changes of a farm",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := parseAddressFlag("farm", farm)
			if err != nil {
				return err
			}

			client, err := e.readClient(cmd.Context())
			if err != nil {
				return err
			}

			state, err := stratops.NewFarmInspector(client).Inspect(cmd.Context(), target)
			if err != nil {
				return err
			}

			return state.Render(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&farm, "farm", "", "Strategy contract address")
	_ = cmd.MarkFlagRequired("farm")

	return cmd
}
