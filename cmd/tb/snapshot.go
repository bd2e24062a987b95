package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alfredjeanlab/teamboard/internal/snapshot"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export [<file>]",
	Short:   "Export the full board state as JSON (stdout by default)",
	GroupID: "system",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := boardClient.ExportSnapshot(context.Background())
		if err != nil {
			return err
		}

		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

var importCmd = &cobra.Command{
	Use:     "import [<file>]",
	Short:   "Replace all board state with a snapshot (stdin by default)",
	GroupID: "system",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		snap, err := snapshot.Decode(in)
		if err != nil {
			return err
		}

		counts, err := boardClient.ImportSnapshot(context.Background(), snap)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(counts)
			return nil
		}
		fmt.Printf("imported %d members, %d boards, %d groups, %d items\n",
			counts.Members, counts.Boards, counts.Groups, counts.Items)
		return nil
	},
}
