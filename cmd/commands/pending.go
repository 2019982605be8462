package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/stratops/stratops"
	"github.com/stratops/stratops/types"
)

func buildPendingCmd(e *env) *cobra.Command {
	var (
		farm     string
		command  string
		timelock string
	)

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Show pending timelock changes for a farm",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := parseAddressFlag("farm", farm)
			if err != nil {
				return err
			}
			kinds := types.AllCommandKinds
			if command != "" {
				kind, err := types.ParseCommandKind(command)
				if err != nil {
					return err
				}
				kinds = []types.CommandKind{kind}
			}
			tl, err := e.timelock(timelock)
			if err != nil {
				return err
			}

			client, err := e.readClient(cmd.Context())
			if err != nil {
				return err
			}
			controller := stratops.NewTimelockChangeController(client, tl)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Command", "Pending value", "Window")
			for _, kind := range kinds {
				value, err := controller.QueryPendingChange(cmd.Context(), target, kind)
				if err != nil {
					return err
				}
				window, err := controller.QueryTimelockWindow(cmd.Context(), kind)
				if err != nil {
					return err
				}
				change := types.PendingChange{Target: target, Command: kind, Value: value}
				if err := table.Append([]string{kind.String(), change.Display(), window.String()}); err != nil {
					return err
				}
			}

			return table.Render()
		},
	}

	cmd.Flags().StringVar(&farm, "farm", "", "Strategy contract address")
	cmd.Flags().StringVar(&command, "command", "", "Only show this command")
	cmd.Flags().StringVar(&timelock, "timelock", "", "Timelock address (defaults to the configured timelock)")
	_ = cmd.MarkFlagRequired("farm")

	return cmd
}
