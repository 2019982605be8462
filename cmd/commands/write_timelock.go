package commands

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/stratops/stratops"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
	"github.com/stratops/stratops/types"
)

func buildWriteTimelockCmd(e *env) *cobra.Command {
	var (
		farm        string
		command     string
		value       string
		set         bool
		timelock    string
		impersonate string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "write-timelock",
		Short: "Propose a strategy parameter change or apply a pending one",
		Long: `Proposes <command>=<value> for a farm through the timelock, or with --set applies the
pending value once the timelock window has elapsed. Prints the transaction hash.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := parseAddressFlag("farm", farm)
			if err != nil {
				return err
			}
			kind, err := types.ParseCommandKind(command)
			if err != nil {
				return err
			}
			var v *big.Int
			if !set {
				if value == "" {
					return sdkerrors.NewMissingValueError(kind.String())
				}
				if v, err = parseValue(value); err != nil {
					return err
				}
			}
			tl, err := e.timelock(timelock)
			if err != nil {
				return err
			}

			client, err := e.writeClient(cmd.Context(), impersonate, dryRun)
			if err != nil {
				return err
			}

			controller := stratops.NewTimelockChangeController(client, tl)
			result, err := controller.RequestChangeKind(cmd.Context(), target, kind, set, v)
			if err != nil {
				return err
			}

			if dryRun {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "simulated %s of %s on %s\n", phaseName(set), kind, target.Hex())
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Hash)

			return err
		},
	}

	cmd.Flags().StringVar(&farm, "farm", "", "Strategy contract address")
	cmd.Flags().StringVar(&command, "command", "", "One of devFee, adminFee, owner, reinvestReward")
	cmd.Flags().StringVar(&value, "value", "", "Proposed value (integer, 0x hex, or address for owner)")
	cmd.Flags().BoolVar(&set, "set", false, "Apply the pending change instead of proposing")
	cmd.Flags().StringVar(&timelock, "timelock", "", "Timelock address (defaults to the configured timelock)")
	cmd.Flags().StringVar(&impersonate, "impersonate", "", "Send unsigned from this account on a fork node")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate the transaction without sending it")
	_ = cmd.MarkFlagRequired("farm")
	_ = cmd.MarkFlagRequired("command")

	return cmd
}

// parseValue accepts decimal or 0x prefixed integers. Addresses parse as their integer
// value, which is how owner changes travel through the timelock.
func parseValue(s string) (*big.Int, error) {
	if common.IsHexAddress(s) {
		return common.HexToAddress(s).Big(), nil
	}

	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("--value: invalid integer %q", s)
	}

	return v, nil
}

func phaseName(set bool) string {
	if set {
		return "set"
	}

	return "propose"
}
