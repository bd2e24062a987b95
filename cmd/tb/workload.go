package main

import (
	"context"

	"github.com/spf13/cobra"
)

var workloadCmd = &cobra.Command{
	Use:     "workload <board-id>",
	Short:   "Show task-days per member over a date window",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		today, _ := cmd.Flags().GetString("today")

		resp, err := boardClient.Workload(context.Background(), args[0], from, to, today)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		members, err := boardClient.ListMembers(context.Background())
		if err != nil {
			return err
		}
		printWorkload(resp, members)
		return nil
	},
}

func init() {
	workloadCmd.Flags().String("from", "", "window start (YYYY-MM-DD, required)")
	workloadCmd.Flags().String("to", "", "window end (YYYY-MM-DD, required)")
	workloadCmd.Flags().String("today", "", "reference date for undated items (YYYY-MM-DD)")
	workloadCmd.MarkFlagRequired("from")
	workloadCmd.MarkFlagRequired("to")
}
