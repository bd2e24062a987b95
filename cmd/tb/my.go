package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var myCmd = &cobra.Command{
	Use:     "my <member-id>",
	Short:   "Show a member's assigned items with due-today and blocked flags",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		today, _ := cmd.Flags().GetString("today")

		resp, err := boardClient.MemberItems(context.Background(), args[0], today)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		if len(resp.Items) == 0 {
			fmt.Println("no assigned items")
			return nil
		}
		for _, it := range resp.Items {
			marker := ""
			if it.DueToday {
				marker += " (due today)"
			}
			if it.Blocked {
				marker += " " + blockedMarker(true)
			}
			fmt.Printf("%s  %-12s %s%s\n", it.ID, it.Status, it.Title, marker)
		}
		fmt.Printf("\ntoday: %s\n", resp.Today)
		return nil
	},
}

func init() {
	myCmd.Flags().String("today", "", "reference date for the due-today flag (YYYY-MM-DD)")
}
