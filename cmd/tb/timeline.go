package main

import (
	"context"

	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:     "timeline <board-id>",
	Short:   "Show a board's scheduling timeline",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		today, _ := cmd.Flags().GetString("today")

		resp, err := boardClient.Timeline(context.Background(), args[0], today)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		printTimeline(resp)
		return nil
	},
}

func init() {
	timelineCmd.Flags().String("today", "", "reference date for undated items (YYYY-MM-DD)")
}
