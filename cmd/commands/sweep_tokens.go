package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratops/stratops"
)

func buildSweepTokensCmd(e *env) *cobra.Command {
	var (
		tokens      string
		timelock    string
		impersonate string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "sweep-tokens",
		Short: "Sweep token balances from the timelock to its manager",
		Long: `Sweeps the full timelock balance of the configured tokens selected by --tokens, a comma
separated list of indices and ranges such as 0,2-4. Tokens with a zero balance are skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			indices, err := stratops.ParseIndexList(tokens)
			if err != nil {
				return err
			}
			tl, err := e.timelock(timelock)
			if err != nil {
				return err
			}

			client, err := e.writeClient(cmd.Context(), impersonate, dryRun)
			if err != nil {
				return err
			}

			results, err := stratops.NewTokenSweeper(client, tl).Sweep(cmd.Context(), e.cfg.Tokens, indices)
			for _, r := range results {
				line := fmt.Sprintf("%s: swept %s in %s", r.Balance.Symbol, r.Balance.Formatted(), r.Tx.Hash)
				if r.Skipped {
					line = r.Balance.Symbol + ": nothing to sweep"
				}
				if _, werr := fmt.Fprintln(cmd.OutOrStdout(), line); werr != nil {
					return werr
				}
			}

			return err
		},
	}

	cmd.Flags().StringVar(&tokens, "tokens", "", "Token indices to sweep, e.g. 0,2-4")
	cmd.Flags().StringVar(&timelock, "timelock", "", "Timelock address (defaults to the configured timelock)")
	cmd.Flags().StringVar(&impersonate, "impersonate", "", "Send unsigned from this account on a fork node")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate the sweeps without sending them")
	_ = cmd.MarkFlagRequired("tokens")

	return cmd
}
