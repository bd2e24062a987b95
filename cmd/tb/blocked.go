package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/teamboard/internal/client"
	"github.com/spf13/cobra"
)

var blockedCmd = &cobra.Command{
	Use:     "blocked [<item-id>]",
	Short:   "Check an item's blocked state, or list blocked items",
	GroupID: "views",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			blocked, err := boardClient.ItemBlocked(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]any{"item_id": args[0], "blocked": blocked})
				return nil
			}
			if blocked {
				fmt.Printf("item %s is %s\n", args[0], blockedMarker(true))
			} else {
				fmt.Printf("item %s is not blocked\n", args[0])
			}
			return nil
		}

		// No item given: list items whose derived state is blocked.
		board, _ := cmd.Flags().GetString("board")
		items, err := boardClient.ListItems(context.Background(), &client.ListItemsRequest{Board: board})
		if err != nil {
			return err
		}
		var blockedItems []*client.ItemDetail
		for _, it := range items {
			detail, err := boardClient.GetItem(context.Background(), it.ID)
			if err != nil {
				return err
			}
			if detail.Blocked {
				blockedItems = append(blockedItems, detail)
			}
		}
		if jsonOutput {
			printJSON(blockedItems)
			return nil
		}
		if len(blockedItems) == 0 {
			fmt.Println("no blocked items")
			return nil
		}
		for _, it := range blockedItems {
			fmt.Printf("%s  %s  waiting on %s\n", it.ID, it.Title, joinIDs(it.Dependencies))
		}
		return nil
	},
}

func init() {
	blockedCmd.Flags().String("board", "", "limit to a board ID")
}
