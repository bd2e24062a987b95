// Package server implements the board service layer and its HTTP JSON
// transport.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/teamboard/internal/derive"
	"github.com/alfredjeanlab/teamboard/internal/events"
	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/alfredjeanlab/teamboard/internal/store"
)

// BoardServer carries the store, the event publisher, and the clock used
// to resolve "today" when a request does not supply a reference date.
type BoardServer struct {
	store     store.Store
	publisher events.Publisher
	now       func() model.Date
}

// NewBoardServer returns a new BoardServer backed by the given store and publisher.
func NewBoardServer(s store.Store, p events.Publisher) *BoardServer {
	return &BoardServer{
		store:     s,
		publisher: p,
		now: func() model.Date {
			return model.DateOf(time.Now().UTC())
		},
	}
}

// publish emits an event to the publisher. Best-effort; failures are logged
// but do not block the caller.
func (s *BoardServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// inputError indicates invalid user input.
// Transport layers map this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }

// itemDetail is an item together with its derived and relational state.
type itemDetail struct {
	*model.Item
	Blocked      bool     `json:"blocked"`
	Assignees    []string `json:"assignees"`
	Dependencies []string `json:"dependencies"`
}

// detailFor assembles the full view of an item: its record, assignee set,
// outgoing dependency targets, and the derived blocked flag.
func (s *BoardServer) detailFor(ctx context.Context, it *model.Item) (*itemDetail, error) {
	assignees, err := s.store.Assignees(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	deps, err := s.store.Dependencies(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if assignees == nil {
		assignees = []string{}
	}
	if deps == nil {
		deps = []string{}
	}
	return &itemDetail{
		Item:         it,
		Blocked:      s.blockedFor(ctx, deps),
		Assignees:    assignees,
		Dependencies: deps,
	}, nil
}

// blockedFor evaluates the dependency resolver over the given outgoing
// edge targets. A target that cannot be loaded counts as unsatisfied.
func (s *BoardServer) blockedFor(ctx context.Context, dependsOn []string) bool {
	return derive.IsBlocked(dependsOn, func(id string) (*model.Item, bool) {
		dep, err := s.store.GetItem(ctx, id)
		if err != nil {
			return nil, false
		}
		return dep, true
	})
}

// isBlocked evaluates the blocked flag for a single item id.
func (s *BoardServer) isBlocked(ctx context.Context, itemID string) (bool, error) {
	deps, err := s.store.Dependencies(ctx, itemID)
	if err != nil {
		return false, err
	}
	return s.blockedFor(ctx, deps), nil
}

// isNotFound reports whether err names a missing entity.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
