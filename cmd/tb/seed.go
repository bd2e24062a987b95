package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alfredjeanlab/teamboard/internal/client"
	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/spf13/cobra"
)

// seedCmd creates the sample team and board through the server API, so a
// fresh install has something to look at.
var seedCmd = &cobra.Command{
	Use:     "seed",
	Short:   "Seed the server with sample demo data",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		alice, err := boardClient.CreateMember(ctx, "Alice", "alice@team.local")
		if err != nil {
			return err
		}
		bob, err := boardClient.CreateMember(ctx, "Bob", "bob@team.local")
		if err != nil {
			return err
		}
		charlie, err := boardClient.CreateMember(ctx, "Charlie", "charlie@team.local")
		if err != nil {
			return err
		}

		board, err := boardClient.CreateBoard(ctx, &client.CreateBoardRequest{
			Name:        "Sample Project",
			Description: "Internal demo project",
		})
		if err != nil {
			return err
		}

		groupIDs := make(map[string]string, 3)
		for i, name := range []string{"Backlog", "In Progress", "Review"} {
			pos := i
			g, err := boardClient.CreateGroup(ctx, board.ID, name, &pos)
			if err != nil {
				return err
			}
			groupIDs[name] = g.ID
		}

		today := model.DateOf(time.Now().UTC())
		weekOut := today.AddDays(7)

		if _, err := boardClient.CreateItem(ctx, &client.CreateItemRequest{
			BoardID:     board.ID,
			GroupID:     groupIDs["Backlog"],
			Title:       "Define requirements",
			Description: "Kickoff with stakeholders",
			CreatedBy:   alice.ID,
			Assignees:   []string{alice.ID},
		}); err != nil {
			return err
		}
		if _, err := boardClient.CreateItem(ctx, &client.CreateItemRequest{
			BoardID:     board.ID,
			GroupID:     groupIDs["Backlog"],
			Title:       "Wireframes",
			Description: "UX wireframes for core flows",
			CreatedBy:   alice.ID,
			Assignees:   []string{alice.ID},
		}); err != nil {
			return err
		}
		skeleton, err := boardClient.CreateItem(ctx, &client.CreateItemRequest{
			BoardID:       board.ID,
			GroupID:       groupIDs["In Progress"],
			Title:         "API skeleton",
			Description:   "Set up endpoints",
			Status:        string(model.StatusInProgress),
			StartDate:     &today,
			DueDate:       &weekOut,
			TimelineStart: &today,
			TimelineEnd:   &weekOut,
			CreatedBy:     bob.ID,
			Assignees:     []string{bob.ID},
		})
		if err != nil {
			return err
		}
		if _, err := boardClient.CreateItem(ctx, &client.CreateItemRequest{
			BoardID:      board.ID,
			GroupID:      groupIDs["Review"],
			Title:        "Review architecture",
			Description:  "Tech review",
			Status:       string(model.StatusBlocked),
			CreatedBy:    charlie.ID,
			Assignees:    []string{charlie.ID},
			Dependencies: []string{skeleton.ID},
		}); err != nil {
			return err
		}

		fmt.Printf("seeded board %s (Sample Project) with 3 members and 4 items\n", board.ID)
		return nil
	},
}
