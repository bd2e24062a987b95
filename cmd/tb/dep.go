package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var depCmd = &cobra.Command{
	Use:     "dep",
	Short:   "Manage item dependencies",
	GroupID: "items",
}

var depAddCmd = &cobra.Command{
	Use:   "add <item-id> <depends-on-id>",
	Short: "Make an item depend on another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := boardClient.AddDependency(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]any{"item_id": args[0], "depends_on": deps})
			return nil
		}
		fmt.Printf("item %s depends on: %s\n", args[0], joinIDs(deps))
		return nil
	},
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove <item-id> <depends-on-id>",
	Short: "Remove a single dependency edge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := boardClient.RemoveDependency(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("dependency %s -> %s removed\n", args[0], args[1])
		return nil
	},
}

var depClearCmd = &cobra.Command{
	Use:   "clear <item-id>",
	Short: "Remove every outgoing dependency of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := boardClient.ClearDependencies(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("dependencies of %s cleared\n", args[0])
		return nil
	},
}

var depListCmd = &cobra.Command{
	Use:   "list <item-id>",
	Short: "List an item's dependencies and blocked state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := boardClient.Dependencies(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		if len(resp.DependsOn) == 0 {
			fmt.Printf("item %s has no dependencies\n", resp.ItemID)
			return nil
		}
		fmt.Printf("item %s depends on: %s %s\n", resp.ItemID, joinIDs(resp.DependsOn), blockedMarker(resp.Blocked))
		return nil
	},
}

func init() {
	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depRemoveCmd)
	depCmd.AddCommand(depClearCmd)
	depCmd.AddCommand(depListCmd)
}
