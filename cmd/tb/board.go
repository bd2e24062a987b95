package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/teamboard/internal/client"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Short:   "Manage boards",
	GroupID: "team",
}

var boardAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		defaultGroups, _ := cmd.Flags().GetBool("default-groups")

		b, err := boardClient.CreateBoard(context.Background(), &client.CreateBoardRequest{
			Name:          args[0],
			Description:   description,
			DefaultGroups: defaultGroups,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(b)
			return nil
		}
		fmt.Printf("board %s created (%s)\n", b.ID, b.Name)
		return nil
	},
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		boards, err := boardClient.ListBoards(context.Background())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(boards)
			return nil
		}
		printBoardTable(boards)
		return nil
	},
}

var boardShowCmd = &cobra.Command{
	Use:   "show <board-id>",
	Short: "Show a board's lanes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lanes, err := boardClient.Lanes(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(lanes)
			return nil
		}
		printLanes(lanes)
		return nil
	},
}

var boardClearCmd = &cobra.Command{
	Use:   "clear <board-id>",
	Short: "Delete every item on a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to clear board %s without --yes", args[0])
		}

		removed, err := boardClient.ClearBoardItems(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]int{"removed": removed})
			return nil
		}
		fmt.Printf("removed %d items\n", removed)
		return nil
	},
}

func init() {
	boardAddCmd.Flags().String("description", "", "board description")
	boardAddCmd.Flags().Bool("default-groups", false, "create Backlog / In Progress / Done groups")
	boardClearCmd.Flags().Bool("yes", false, "confirm clearing all items")

	boardCmd.AddCommand(boardAddCmd)
	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardClearCmd)
}
