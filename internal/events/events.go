package events

import (
	"context"

	"github.com/alfredjeanlab/teamboard/internal/model"
)

// Event topic constants
const (
	TopicMemberCreated = "teamboard.member.created"

	TopicBoardCreated = "teamboard.board.created"
	TopicBoardCleared = "teamboard.board.cleared"

	TopicGroupCreated   = "teamboard.group.created"
	TopicGroupReordered = "teamboard.group.reordered"

	TopicItemCreated  = "teamboard.item.created"
	TopicItemUpdated  = "teamboard.item.updated"
	TopicItemAdvanced = "teamboard.item.advanced"
	TopicItemDeleted  = "teamboard.item.deleted"

	TopicAssignmentAdded   = "teamboard.assignment.added"
	TopicAssignmentRemoved = "teamboard.assignment.removed"

	TopicDependencyAdded   = "teamboard.dependency.added"
	TopicDependencyRemoved = "teamboard.dependency.removed"

	TopicSnapshotImported = "teamboard.snapshot.imported"
)

// Event types

type MemberCreated struct {
	Member *model.Member `json:"member"`
}

type BoardCreated struct {
	Board *model.Board `json:"board"`
}

type BoardCleared struct {
	BoardID string `json:"board_id"`
	Removed int    `json:"removed"`
}

type GroupCreated struct {
	Group *model.Group `json:"group"`
}

type GroupReordered struct {
	BoardID string   `json:"board_id"`
	Order   []string `json:"order"`
}

type ItemCreated struct {
	Item *model.Item `json:"item"`
}

type ItemUpdated struct {
	Item    *model.Item    `json:"item"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type ItemAdvanced struct {
	Item *model.Item  `json:"item"`
	From model.Status `json:"from"`
}

type ItemDeleted struct {
	ItemID string `json:"item_id"`
}

type AssignmentAdded struct {
	ItemID   string `json:"item_id"`
	MemberID string `json:"member_id"`
}

type AssignmentRemoved struct {
	ItemID   string `json:"item_id"`
	MemberID string `json:"member_id"`
}

type DependencyAdded struct {
	ItemID      string `json:"item_id"`
	DependsOnID string `json:"depends_on_id"`
}

type DependencyRemoved struct {
	ItemID      string `json:"item_id"`
	DependsOnID string `json:"depends_on_id"`
}

type SnapshotImported struct {
	Items   int `json:"items"`
	Boards  int `json:"boards"`
	Members int `json:"members"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
