// Package demo seeds a store with a small sample team and board, used by
// "tb seed" and "tb serve --demo" to give new installs something to look at.
package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/alfredjeanlab/teamboard/internal/idgen"
	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/alfredjeanlab/teamboard/internal/store"
)

// Seed creates the sample team (Alice, Bob, Charlie), a "Sample Project"
// board with Backlog / In Progress / Review groups, and four items with one
// assignment per item and a single dependency edge. The today argument
// anchors the one scheduled item's week-long window.
func Seed(ctx context.Context, s store.Store, today model.Date) error {
	alice, err := addMember(ctx, s, "Alice", "alice@team.local")
	if err != nil {
		return err
	}
	bob, err := addMember(ctx, s, "Bob", "bob@team.local")
	if err != nil {
		return err
	}
	charlie, err := addMember(ctx, s, "Charlie", "charlie@team.local")
	if err != nil {
		return err
	}

	boardID, err := idgen.Board()
	if err != nil {
		return err
	}
	board := &model.Board{ID: boardID, Name: "Sample Project", Description: "Internal demo project"}
	if err := s.CreateBoard(ctx, board); err != nil {
		return fmt.Errorf("seed board: %w", err)
	}

	backlog, err := addGroup(ctx, s, boardID, "Backlog", 0)
	if err != nil {
		return err
	}
	inProgress, err := addGroup(ctx, s, boardID, "In Progress", 1)
	if err != nil {
		return err
	}
	review, err := addGroup(ctx, s, boardID, "Review", 2)
	if err != nil {
		return err
	}

	weekOut := today.AddDays(7)

	requirements, err := addItem(ctx, s, &model.Item{
		BoardID:     boardID,
		GroupID:     backlog,
		Title:       "Define requirements",
		Description: "Kickoff with stakeholders",
		Status:      model.StatusNotStarted,
		CreatedBy:   alice,
	})
	if err != nil {
		return err
	}
	wireframes, err := addItem(ctx, s, &model.Item{
		BoardID:     boardID,
		GroupID:     backlog,
		Title:       "Wireframes",
		Description: "UX wireframes for core flows",
		Status:      model.StatusNotStarted,
		CreatedBy:   alice,
	})
	if err != nil {
		return err
	}
	apiSkeleton, err := addItem(ctx, s, &model.Item{
		BoardID:       boardID,
		GroupID:       inProgress,
		Title:         "API skeleton",
		Description:   "Set up endpoints",
		Status:        model.StatusInProgress,
		StartDate:     &today,
		DueDate:       &weekOut,
		TimelineStart: &today,
		TimelineEnd:   &weekOut,
		CreatedBy:     bob,
	})
	if err != nil {
		return err
	}
	archReview, err := addItem(ctx, s, &model.Item{
		BoardID:     boardID,
		GroupID:     review,
		Title:       "Review architecture",
		Description: "Tech review",
		Status:      model.StatusBlocked,
		CreatedBy:   charlie,
	})
	if err != nil {
		return err
	}

	for _, pair := range [][2]string{
		{requirements, alice},
		{wireframes, alice},
		{apiSkeleton, bob},
		{archReview, charlie},
	} {
		if err := s.Assign(ctx, pair[0], pair[1]); err != nil {
			return fmt.Errorf("seed assignment: %w", err)
		}
	}

	// The architecture review waits on the API skeleton.
	if err := s.AddDependency(ctx, archReview, apiSkeleton); err != nil {
		return fmt.Errorf("seed dependency: %w", err)
	}

	return nil
}

// SeedNow is Seed anchored to the current UTC date.
func SeedNow(ctx context.Context, s store.Store) error {
	return Seed(ctx, s, model.DateOf(time.Now().UTC()))
}

func addMember(ctx context.Context, s store.Store, name, email string) (string, error) {
	id, err := idgen.Member()
	if err != nil {
		return "", err
	}
	if err := s.CreateMember(ctx, &model.Member{ID: id, Name: name, Email: email}); err != nil {
		return "", fmt.Errorf("seed member %s: %w", name, err)
	}
	return id, nil
}

func addGroup(ctx context.Context, s store.Store, boardID, name string, position int) (string, error) {
	id, err := idgen.Group()
	if err != nil {
		return "", err
	}
	if err := s.CreateGroup(ctx, &model.Group{ID: id, BoardID: boardID, Name: name, Position: position}); err != nil {
		return "", fmt.Errorf("seed group %s: %w", name, err)
	}
	return id, nil
}

func addItem(ctx context.Context, s store.Store, it *model.Item) (string, error) {
	id, err := idgen.Item()
	if err != nil {
		return "", err
	}
	it.ID = id
	if err := s.CreateItem(ctx, it); err != nil {
		return "", fmt.Errorf("seed item %s: %w", it.Title, err)
	}
	return id, nil
}
