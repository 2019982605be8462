package commands

import (
	"github.com/spf13/cobra"

	"github.com/stratops/stratops"
)

func buildTimelockBalancesCmd(e *env) *cobra.Command {
	var holder string

	cmd := &cobra.Command{
		Use:   "timelock-balances",
		Short: "Print the balances of the configured tokens held by the timelock",
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := e.timelock(holder)
			if err != nil {
				return err
			}

			client, err := e.readClient(cmd.Context())
			if err != nil {
				return err
			}

			balances, err := stratops.TokenBalances(cmd.Context(), client, owner, e.cfg.Tokens)
			if err != nil {
				return err
			}

			return stratops.RenderBalances(cmd.OutOrStdout(), owner, balances)
		},
	}

	cmd.Flags().StringVar(&holder, "holder", "", "Address to inspect (defaults to the configured timelock)")

	return cmd
}
