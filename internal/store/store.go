// Package store defines the persistence interface for the board data model.
package store

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/teamboard/internal/model"
)

// ErrNotFound is returned when an operation names an entity id that does
// not exist where existence is required. Implementations wrap it with the
// entity kind and id.
var ErrNotFound = errors.New("not found")

// Store holds the entity tables and the two relation sets. Implementations
// must keep the relations consistent with entity deletions: deleting an
// item removes every assignment and every dependency edge (in either
// direction) touching it, with no observable intermediate state.
type Store interface {
	// Members
	CreateMember(ctx context.Context, m *model.Member) error
	GetMember(ctx context.Context, id string) (*model.Member, error)
	ListMembers(ctx context.Context) ([]*model.Member, error)

	// Boards
	CreateBoard(ctx context.Context, b *model.Board) error
	GetBoard(ctx context.Context, id string) (*model.Board, error)
	ListBoards(ctx context.Context) ([]*model.Board, error)

	// Groups. ListGroups returns a board's groups ordered by position,
	// ties broken by insertion order. ReorderGroups assigns position =
	// index for each name in the sequence, scoped to the board.
	CreateGroup(ctx context.Context, g *model.Group) error
	GetGroup(ctx context.Context, id string) (*model.Group, error)
	ListGroups(ctx context.Context, boardID string) ([]*model.Group, error)
	ReorderGroups(ctx context.Context, boardID string, orderedNames []string) error

	// Items. DeleteItem removes the item and all relation tuples
	// mentioning it as one logical operation. ClearBoardItems does the
	// same for every item on a board and reports how many were removed.
	CreateItem(ctx context.Context, it *model.Item) error
	GetItem(ctx context.Context, id string) (*model.Item, error)
	ListItems(ctx context.Context, filter model.ItemFilter) ([]*model.Item, error)
	UpdateItem(ctx context.Context, it *model.Item) error
	DeleteItem(ctx context.Context, id string) error
	ClearBoardItems(ctx context.Context, boardID string) (int, error)

	// Assignments (idempotent set semantics).
	Assign(ctx context.Context, itemID, memberID string) error
	Unassign(ctx context.Context, itemID, memberID string) error
	Assignees(ctx context.Context, itemID string) ([]string, error)

	// Dependencies. AddDependency is a silent no-op for self-loops and an
	// idempotent insert otherwise. Dependencies returns the outgoing edge
	// targets; ClearDependencies removes outgoing edges only.
	AddDependency(ctx context.Context, itemID, dependsOnID string) error
	RemoveDependency(ctx context.Context, itemID, dependsOnID string) error
	Dependencies(ctx context.Context, itemID string) ([]string, error)
	ClearDependencies(ctx context.Context, itemID string) error

	// Snapshot. Export dumps the whole store; Import replaces the whole
	// store with the snapshot's contents.
	Export(ctx context.Context) (*model.Snapshot, error)
	Import(ctx context.Context, snap *model.Snapshot) error

	// Lifecycle
	Close() error
}
