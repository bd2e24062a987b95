package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/teamboard/internal/client"
	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/spf13/cobra"
)

var itemCmd = &cobra.Command{
	Use:     "item",
	Short:   "Manage items",
	GroupID: "items",
}

// dateFlag parses a date-valued flag. Returns nil when the flag was not set.
// An empty value maps to the zero Date, which the server reads as "clear".
func dateFlag(cmd *cobra.Command, name string) (*model.Date, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return &model.Date{}, nil
	}
	d, err := model.ParseDate(v)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}

func printItemResult(it *client.ItemDetail) {
	if jsonOutput {
		printJSON(it)
		return
	}
	printItemDetail(it)
}

var itemAddCmd = &cobra.Command{
	Use:   "add <board-id> <group-id> <title>",
	Short: "Create an item",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		status, _ := cmd.Flags().GetString("status")
		assignees, _ := cmd.Flags().GetStringSlice("assign")
		dependencies, _ := cmd.Flags().GetStringSlice("dep")

		req := &client.CreateItemRequest{
			BoardID:      args[0],
			GroupID:      args[1],
			Title:        args[2],
			Description:  description,
			Status:       status,
			CreatedBy:    actor,
			Assignees:    assignees,
			Dependencies: dependencies,
		}
		var err error
		if req.StartDate, err = dateFlag(cmd, "start"); err != nil {
			return err
		}
		if req.DueDate, err = dateFlag(cmd, "due"); err != nil {
			return err
		}
		if req.TimelineStart, err = dateFlag(cmd, "timeline-start"); err != nil {
			return err
		}
		if req.TimelineEnd, err = dateFlag(cmd, "timeline-end"); err != nil {
			return err
		}

		it, err := boardClient.CreateItem(context.Background(), req)
		if err != nil {
			return err
		}
		printItemResult(it)
		return nil
	},
}

var itemShowCmd = &cobra.Command{
	Use:   "show <item-id>",
	Short: "Show an item with its derived state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		it, err := boardClient.GetItem(context.Background(), args[0])
		if err != nil {
			return err
		}
		printItemResult(it)
		return nil
	},
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items with optional filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		board, _ := cmd.Flags().GetString("board")
		group, _ := cmd.Flags().GetString("group")
		status, _ := cmd.Flags().GetStringSlice("status")
		assignedTo, _ := cmd.Flags().GetString("assignee")
		search, _ := cmd.Flags().GetString("search")

		items, err := boardClient.ListItems(context.Background(), &client.ListItemsRequest{
			Board:      board,
			Group:      group,
			Status:     status,
			AssignedTo: assignedTo,
			Search:     search,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(items)
			return nil
		}
		printItemTable(items)
		return nil
	},
}

var itemUpdateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Update an item's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &client.UpdateItemRequest{}

		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			req.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}
		if cmd.Flags().Changed("group") {
			v, _ := cmd.Flags().GetString("group")
			req.GroupID = &v
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			req.Status = &v
		}
		var err error
		if req.StartDate, err = dateFlag(cmd, "start"); err != nil {
			return err
		}
		if req.DueDate, err = dateFlag(cmd, "due"); err != nil {
			return err
		}
		if req.TimelineStart, err = dateFlag(cmd, "timeline-start"); err != nil {
			return err
		}
		if req.TimelineEnd, err = dateFlag(cmd, "timeline-end"); err != nil {
			return err
		}

		it, err := boardClient.UpdateItem(context.Background(), args[0], req)
		if err != nil {
			return err
		}
		printItemResult(it)
		return nil
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Delete an item and its relation entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := boardClient.DeleteItem(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("item %s deleted\n", args[0])
		return nil
	},
}

var itemAdvanceCmd = &cobra.Command{
	Use:   "advance <item-id>",
	Short: "Move an item one step along the status cycle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		it, err := boardClient.AdvanceItem(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(it)
			return nil
		}
		fmt.Printf("item %s is now %s\n", it.ID, it.Status)
		return nil
	},
}

func addItemDateFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD; empty clears)")
	cmd.Flags().String("due", "", "due date (YYYY-MM-DD; empty clears)")
	cmd.Flags().String("timeline-start", "", "scheduled start (YYYY-MM-DD; empty clears)")
	cmd.Flags().String("timeline-end", "", "scheduled end (YYYY-MM-DD; empty clears)")
}

func init() {
	itemAddCmd.Flags().String("description", "", "item description")
	itemAddCmd.Flags().String("status", "", "initial status (default: Not started)")
	itemAddCmd.Flags().StringSlice("assign", nil, "member ID to assign (repeatable)")
	itemAddCmd.Flags().StringSlice("dep", nil, "item ID this item depends on (repeatable)")
	addItemDateFlags(itemAddCmd)

	itemListCmd.Flags().String("board", "", "filter by board ID")
	itemListCmd.Flags().String("group", "", "filter by group ID")
	itemListCmd.Flags().StringSliceP("status", "s", nil, "filter by status (repeatable)")
	itemListCmd.Flags().String("assignee", "", "filter by assigned member ID")
	itemListCmd.Flags().String("search", "", "substring match on title/description")

	itemUpdateCmd.Flags().String("title", "", "new title")
	itemUpdateCmd.Flags().String("description", "", "new description")
	itemUpdateCmd.Flags().String("group", "", "move to group ID")
	itemUpdateCmd.Flags().String("status", "", "set status directly")
	addItemDateFlags(itemUpdateCmd)

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemShowCmd)
	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemUpdateCmd)
	itemCmd.AddCommand(itemDeleteCmd)
	itemCmd.AddCommand(itemAdvanceCmd)
}
