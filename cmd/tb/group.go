package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:     "group",
	Short:   "Manage groups on a board",
	GroupID: "team",
}

var groupAddCmd = &cobra.Command{
	Use:   "add <board-id> <name>",
	Short: "Add a group to a board",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var position *int
		if cmd.Flags().Changed("position") {
			p, _ := cmd.Flags().GetInt("position")
			position = &p
		}

		g, err := boardClient.CreateGroup(context.Background(), args[0], args[1], position)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(g)
			return nil
		}
		fmt.Printf("group %s created (%s at position %d)\n", g.ID, g.Name, g.Position)
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list <board-id>",
	Short: "List a board's groups in display order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := boardClient.ListGroups(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(groups)
			return nil
		}
		printGroupTable(groups)
		return nil
	},
}

var groupReorderCmd = &cobra.Command{
	Use:   "reorder <board-id> <name>...",
	Short: "Reposition groups by name; each gets position = its argument index",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := boardClient.ReorderGroups(context.Background(), args[0], args[1:])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(groups)
			return nil
		}
		printGroupTable(groups)
		return nil
	},
}

func init() {
	groupAddCmd.Flags().Int("position", 0, "position in display order (default: append)")

	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupReorderCmd)
}
