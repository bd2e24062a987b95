package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alfredjeanlab/teamboard/internal/client"
	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/alfredjeanlab/teamboard/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func formatDate(d *model.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func blockedMarker(blocked bool) string {
	if blocked {
		return ui.RenderDanger("[blocked]")
	}
	return ""
}

func printItemDetail(it *client.ItemDetail) {
	fmt.Printf("ID:           %s\n", it.ID)
	fmt.Printf("Title:        %s\n", it.Title)
	fmt.Printf("Board:        %s\n", it.BoardID)
	fmt.Printf("Group:        %s\n", it.GroupID)
	fmt.Printf("Status:       %s\n", ui.RenderStatus(it.Status))
	if it.Blocked {
		fmt.Printf("Blocked:      %s\n", blockedMarker(true))
	}
	if it.Description != "" {
		fmt.Printf("Description:  %s\n", it.Description)
	}
	fmt.Printf("Start:        %s\n", formatDate(it.StartDate))
	fmt.Printf("Due:          %s\n", formatDate(it.DueDate))
	if it.TimelineStart != nil || it.TimelineEnd != nil {
		fmt.Printf("Timeline:     %s .. %s\n", formatDate(it.TimelineStart), formatDate(it.TimelineEnd))
	}
	if len(it.Assignees) > 0 {
		fmt.Printf("Assignees:    %s\n", joinIDs(it.Assignees))
	}
	if len(it.Dependencies) > 0 {
		fmt.Printf("Depends on:   %s\n", joinIDs(it.Dependencies))
	}
	if it.CreatedBy != "" {
		fmt.Printf("Created by:   %s\n", it.CreatedBy)
	}
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += id
	}
	return out
}

func printItemTable(items []*model.Item) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tDUE\tTITLE")
	for _, it := range items {
		title := it.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			it.ID,
			ui.RenderStatus(it.Status),
			formatDate(it.DueDate),
			title,
		)
	}
	w.Flush()
	fmt.Printf("\n%d items\n", len(items))
}

func printMemberTable(members []*model.Member) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, m := range members {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Name, m.Email)
	}
	w.Flush()
}

func printBoardTable(boards []*model.Board) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, b := range boards {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.Name, b.Description)
	}
	w.Flush()
}

func printGroupTable(groups []*model.Group) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tID\tNAME")
	for _, g := range groups {
		fmt.Fprintf(w, "%d\t%s\t%s\n", g.Position, g.ID, g.Name)
	}
	w.Flush()
}

func printLanes(resp *client.LanesResponse) {
	for _, lane := range resp.Lanes {
		fmt.Printf("%s (%d)\n", ui.RenderStatus(lane.Status), len(lane.Items))
		for _, it := range lane.Items {
			marker := ""
			if it.Blocked {
				marker = " " + blockedMarker(true)
			}
			fmt.Printf("  %s  %-10s %s%s\n", it.ID, formatDate(it.DueDate), it.Title, marker)
		}
	}
}

func printTimeline(resp *client.TimelineResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tSTART\tEND\tDAYS\tTITLE")
	for _, row := range resp.Rows {
		title := row.Title
		if row.Blocked {
			title += " " + blockedMarker(true)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			row.ItemID,
			ui.RenderStatus(row.Status),
			row.Start, row.End, row.Duration, title,
		)
	}
	w.Flush()
	fmt.Printf("\ntoday: %s\n", resp.Today)
}

func printWorkload(resp *client.WorkloadResponse, members []*model.Member) {
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tNAME\tTASK-DAYS")
	for _, m := range members {
		fmt.Fprintf(w, "%s\t%s\t%d\n", m.ID, names[m.ID], resp.Workload[m.ID])
	}
	w.Flush()
	fmt.Printf("\nwindow: %s .. %s\n", resp.From, resp.To)
}
