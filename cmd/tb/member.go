package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var memberCmd = &cobra.Command{
	Use:     "member",
	Short:   "Manage team members",
	GroupID: "team",
}

var memberAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a team member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		m, err := boardClient.CreateMember(context.Background(), args[0], email)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(m)
			return nil
		}
		fmt.Printf("member %s created (%s)\n", m.ID, m.Name)
		return nil
	},
}

var memberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List team members",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		members, err := boardClient.ListMembers(context.Background())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(members)
			return nil
		}
		printMemberTable(members)
		return nil
	},
}

var memberShowCmd = &cobra.Command{
	Use:   "show <member-id>",
	Short: "Show a team member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := boardClient.GetMember(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(m)
			return nil
		}
		fmt.Printf("ID:     %s\n", m.ID)
		fmt.Printf("Name:   %s\n", m.Name)
		fmt.Printf("Email:  %s\n", m.Email)
		return nil
	},
}

func init() {
	memberAddCmd.Flags().String("email", "", "member email address")

	memberCmd.AddCommand(memberAddCmd)
	memberCmd.AddCommand(memberListCmd)
	memberCmd.AddCommand(memberShowCmd)
}
