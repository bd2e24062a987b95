package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/teamboard/internal/derive"
	"github.com/alfredjeanlab/teamboard/internal/events"
	"github.com/alfredjeanlab/teamboard/internal/idgen"
	"github.com/alfredjeanlab/teamboard/internal/model"
)

// errAdvanceBlocked is returned when the status cycle gate refuses a step.
// The HTTP layer maps it to 409.
var errAdvanceBlocked = errors.New("item is blocked by unfinished dependencies")

// createItemInput holds transport-agnostic parameters for creating an item.
type createItemInput struct {
	BoardID       string      `json:"board_id"`
	GroupID       string      `json:"group_id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Status        string      `json:"status"`
	StartDate     *model.Date `json:"start_date,omitempty"`
	DueDate       *model.Date `json:"due_date,omitempty"`
	TimelineStart *model.Date `json:"timeline_start,omitempty"`
	TimelineEnd   *model.Date `json:"timeline_end,omitempty"`
	CreatedBy     string      `json:"created_by"`
	Assignees     []string    `json:"assignees"`
	Dependencies  []string    `json:"dependencies"`
}

// createItem validates input, persists a new item with its initial assignee
// and dependency sets, and publishes an ItemCreated event. Returns
// inputError for validation failures.
func (s *BoardServer) createItem(ctx context.Context, in createItemInput) (*itemDetail, error) {
	if in.Title == "" {
		return nil, inputError("title is required")
	}
	if in.BoardID == "" {
		return nil, inputError("board_id is required")
	}
	if in.GroupID == "" {
		return nil, inputError("group_id is required")
	}

	status := model.Status(in.Status)
	if in.Status == "" {
		status = model.StatusNotStarted
	}
	if !status.IsValid() {
		return nil, inputError("unknown status " + in.Status)
	}

	id, err := idgen.Item()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	it := &model.Item{
		ID:            id,
		BoardID:       in.BoardID,
		GroupID:       in.GroupID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        status,
		StartDate:     in.StartDate,
		DueDate:       in.DueDate,
		TimelineStart: in.TimelineStart,
		TimelineEnd:   in.TimelineEnd,
		CreatedBy:     in.CreatedBy,
	}

	if err := s.store.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	for _, memberID := range in.Assignees {
		if err := s.store.Assign(ctx, it.ID, memberID); err != nil {
			return nil, err
		}
	}
	for _, depID := range in.Dependencies {
		if err := s.store.AddDependency(ctx, it.ID, depID); err != nil {
			return nil, err
		}
	}

	detail, err := s.detailFor(ctx, it)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicItemCreated, events.ItemCreated{Item: it})

	return detail, nil
}

// updateItemInput holds transport-agnostic parameters for updating an item.
// Pointer fields indicate optionality: nil means "don't change". A date set
// to its zero value clears the field. Nil Assignees/Dependencies leave the
// relation sets untouched; non-nil slices replace them wholesale.
type updateItemInput struct {
	Title         *string     `json:"title,omitempty"`
	Description   *string     `json:"description,omitempty"`
	GroupID       *string     `json:"group_id,omitempty"`
	Status        *string     `json:"status,omitempty"`
	StartDate     *model.Date `json:"start_date,omitempty"`
	DueDate       *model.Date `json:"due_date,omitempty"`
	TimelineStart *model.Date `json:"timeline_start,omitempty"`
	TimelineEnd   *model.Date `json:"timeline_end,omitempty"`
	Assignees     []string    `json:"assignees,omitempty"`
	Dependencies  []string    `json:"dependencies,omitempty"`
}

// updateItem applies partial updates to an existing item, reconciles its
// relation sets, and publishes an ItemUpdated event. Returns inputError for
// validation failures.
func (s *BoardServer) updateItem(ctx context.Context, id string, in updateItemInput) (*itemDetail, error) {
	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)

	if in.Title != nil {
		if *in.Title == "" {
			return nil, inputError("title cannot be empty")
		}
		it.Title = *in.Title
		changes["title"] = it.Title
	}
	if in.Description != nil {
		it.Description = *in.Description
		changes["description"] = it.Description
	}
	if in.GroupID != nil {
		it.GroupID = *in.GroupID
		changes["group_id"] = it.GroupID
	}
	if in.Status != nil {
		status := model.Status(*in.Status)
		if !status.IsValid() {
			return nil, inputError("unknown status " + *in.Status)
		}
		it.Status = status
		changes["status"] = it.Status
	}

	// A zero date clears the field; any other value sets it.
	applyDate(&it.StartDate, in.StartDate, changes, "start_date")
	applyDate(&it.DueDate, in.DueDate, changes, "due_date")
	applyDate(&it.TimelineStart, in.TimelineStart, changes, "timeline_start")
	applyDate(&it.TimelineEnd, in.TimelineEnd, changes, "timeline_end")

	if err := s.store.UpdateItem(ctx, it); err != nil {
		return nil, err
	}

	if in.Assignees != nil {
		if err := s.reconcileAssignees(ctx, it.ID, in.Assignees); err != nil {
			return nil, fmt.Errorf("failed to reconcile assignees: %w", err)
		}
		changes["assignees"] = in.Assignees
	}
	if in.Dependencies != nil {
		// Rewrite the outgoing edge set: clear, then re-add.
		if err := s.store.ClearDependencies(ctx, it.ID); err != nil {
			return nil, fmt.Errorf("failed to clear dependencies: %w", err)
		}
		for _, depID := range in.Dependencies {
			if err := s.store.AddDependency(ctx, it.ID, depID); err != nil {
				return nil, err
			}
		}
		changes["dependencies"] = in.Dependencies
	}

	detail, err := s.detailFor(ctx, it)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicItemUpdated, events.ItemUpdated{Item: it, Changes: changes})

	return detail, nil
}

func applyDate(field **model.Date, in *model.Date, changes map[string]any, name string) {
	if in == nil {
		return
	}
	if in.IsZero() {
		*field = nil
	} else {
		*field = in
	}
	changes[name] = *field
}

// reconcileAssignees compares the desired assignee set with the existing
// one in the store and assigns/unassigns as needed.
func (s *BoardServer) reconcileAssignees(ctx context.Context, itemID string, want []string) error {
	existing, err := s.store.Assignees(ctx, itemID)
	if err != nil {
		return err
	}

	existingSet := make(map[string]struct{}, len(existing))
	for _, m := range existing {
		existingSet[m] = struct{}{}
	}
	wantSet := make(map[string]struct{}, len(want))
	for _, m := range want {
		wantSet[m] = struct{}{}
	}

	for _, m := range existing {
		if _, ok := wantSet[m]; !ok {
			if err := s.store.Unassign(ctx, itemID, m); err != nil {
				return err
			}
		}
	}
	for _, m := range want {
		if _, ok := existingSet[m]; !ok {
			if err := s.store.Assign(ctx, itemID, m); err != nil {
				return err
			}
		}
	}

	return nil
}

// advanceItem moves an item one step along the status cycle, refusing
// forward movement into "In progress" or "Done" while the item is blocked.
func (s *BoardServer) advanceItem(ctx context.Context, id string) (*itemDetail, error) {
	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	blocked, err := s.isBlocked(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if !derive.CanAdvance(it.Status, blocked) {
		return nil, fmt.Errorf("cannot advance %s to %s: %w", it.Status, it.Status.Next(), errAdvanceBlocked)
	}

	from := it.Status
	it.Status = it.Status.Next()
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return nil, err
	}

	detail, err := s.detailFor(ctx, it)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicItemAdvanced, events.ItemAdvanced{Item: it, From: from})

	return detail, nil
}
