package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var assignCmd = &cobra.Command{
	Use:     "assign <item-id> <member-id>",
	Short:   "Assign a member to an item",
	GroupID: "items",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		assignees, err := boardClient.Assign(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]any{"item_id": args[0], "assignees": assignees})
			return nil
		}
		fmt.Printf("item %s assignees: %s\n", args[0], joinIDs(assignees))
		return nil
	},
}

var unassignCmd = &cobra.Command{
	Use:     "unassign <item-id> <member-id>",
	Short:   "Remove a member from an item",
	GroupID: "items",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := boardClient.Unassign(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("member %s unassigned from %s\n", args[1], args[0])
		return nil
	},
}
