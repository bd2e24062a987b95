package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/alfredjeanlab/teamboard/internal/client"
	"github.com/alfredjeanlab/teamboard/internal/events"
	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Watch for item changes (event-driven with NATS, polling otherwise)",
	GroupID: "views",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		board, _ := cmd.Flags().GetString("board")
		interval, _ := cmd.Flags().GetDuration("interval")
		once, _ := cmd.Flags().GetBool("once")

		req := &client.ListItemsRequest{Board: board}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		seen := make(map[string]model.Item)

		if err := queryAndPrint(ctx, req, seen); err != nil {
			return err
		}
		if once {
			return nil
		}

		natsURL := os.Getenv("TEAMBOARD_NATS_URL")
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL != "" {
			return watchNATS(ctx, natsURL, req, seen)
		}
		return watchPoll(ctx, interval, req, seen)
	},
}

// watchNATS subscribes to board events and re-queries on changes with debounce.
func watchNATS(ctx context.Context, natsURL string, req *client.ListItemsRequest, seen map[string]model.Item) error {
	// reconnectCh receives a signal when the NATS client reconnects after
	// a disconnect, so we can immediately re-query for missed events.
	reconnectCh := make(chan struct{}, 1)

	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
			select {
			case reconnectCh <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("teamboard.>")
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	debounce := time.NewTimer(0)
	debounce.Stop()
	// Drain the timer channel in case it fired between NewTimer and Stop.
	select {
	case <-debounce.C:
	default:
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			debounce.Reset(200 * time.Millisecond)
		case <-reconnectCh:
			debounce.Reset(0) // immediate re-query
		case <-debounce.C:
			if err := queryAndPrint(ctx, req, seen); err != nil {
				return err
			}
		}
	}
}

// watchPoll polls for changes at the given interval.
func watchPoll(ctx context.Context, interval time.Duration, req *client.ListItemsRequest, seen map[string]model.Item) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		if err := queryAndPrint(ctx, req, seen); err != nil {
			return err
		}
	}
}

// queryAndPrint lists items, diffs against the seen map, and prints any changes.
func queryAndPrint(ctx context.Context, req *client.ListItemsRequest, seen map[string]model.Item) error {
	items, err := boardClient.ListItems(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	changed := diffItems(items, seen)
	if len(changed) > 0 {
		if jsonOutput {
			printJSON(changed)
		} else {
			printItemTable(changed)
		}
	}
	return nil
}

// diffItems compares items against the seen map and returns those that are
// new or have any changed field. It updates seen in place.
func diffItems(items []*model.Item, seen map[string]model.Item) []*model.Item {
	var changed []*model.Item
	for _, it := range items {
		prev, ok := seen[it.ID]
		if !ok || !itemEqual(prev, *it) {
			changed = append(changed, it)
		}
		seen[it.ID] = *it
	}
	return changed
}

func itemEqual(a, b model.Item) bool {
	return a.Title == b.Title &&
		a.Description == b.Description &&
		a.GroupID == b.GroupID &&
		a.Status == b.Status &&
		dateEqual(a.StartDate, b.StartDate) &&
		dateEqual(a.DueDate, b.DueDate) &&
		dateEqual(a.TimelineStart, b.TimelineStart) &&
		dateEqual(a.TimelineEnd, b.TimelineEnd)
}

func dateEqual(a, b *model.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func init() {
	watchCmd.Flags().String("board", "", "limit to a board ID")
	watchCmd.Flags().Duration("interval", 5*time.Second, "polling interval")
	watchCmd.Flags().Bool("once", false, "exit after first query")
}
