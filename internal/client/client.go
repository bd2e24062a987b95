// Package client provides a transport-agnostic interface for the teamboard
// service and an HTTP/JSON implementation that talks to the REST API.
package client

import (
	"context"

	"github.com/alfredjeanlab/teamboard/internal/model"
)

// BoardClient is the interface that all teamboard CLI commands use to
// communicate with the board server. It is implemented by HTTPClient.
type BoardClient interface {
	// Members
	CreateMember(ctx context.Context, name, email string) (*model.Member, error)
	GetMember(ctx context.Context, id string) (*model.Member, error)
	ListMembers(ctx context.Context) ([]*model.Member, error)
	MemberItems(ctx context.Context, id string, today string) (*MemberItemsResponse, error)

	// Boards and groups
	CreateBoard(ctx context.Context, req *CreateBoardRequest) (*model.Board, error)
	GetBoard(ctx context.Context, id string) (*model.Board, error)
	ListBoards(ctx context.Context) ([]*model.Board, error)
	ClearBoardItems(ctx context.Context, boardID string) (int, error)
	CreateGroup(ctx context.Context, boardID, name string, position *int) (*model.Group, error)
	ListGroups(ctx context.Context, boardID string) ([]*model.Group, error)
	ReorderGroups(ctx context.Context, boardID string, order []string) ([]*model.Group, error)

	// Board views
	Lanes(ctx context.Context, boardID string) (*LanesResponse, error)
	Timeline(ctx context.Context, boardID, today string) (*TimelineResponse, error)
	Workload(ctx context.Context, boardID, from, to, today string) (*WorkloadResponse, error)

	// Item CRUD
	CreateItem(ctx context.Context, req *CreateItemRequest) (*ItemDetail, error)
	GetItem(ctx context.Context, id string) (*ItemDetail, error)
	ListItems(ctx context.Context, req *ListItemsRequest) ([]*model.Item, error)
	UpdateItem(ctx context.Context, id string, req *UpdateItemRequest) (*ItemDetail, error)
	DeleteItem(ctx context.Context, id string) error
	AdvanceItem(ctx context.Context, id string) (*ItemDetail, error)
	ItemBlocked(ctx context.Context, id string) (bool, error)

	// Relations
	Assign(ctx context.Context, itemID, memberID string) ([]string, error)
	Unassign(ctx context.Context, itemID, memberID string) error
	Assignees(ctx context.Context, itemID string) ([]string, error)
	AddDependency(ctx context.Context, itemID, dependsOn string) ([]string, error)
	RemoveDependency(ctx context.Context, itemID, dependsOn string) error
	ClearDependencies(ctx context.Context, itemID string) error
	Dependencies(ctx context.Context, itemID string) (*DependenciesResponse, error)

	// Snapshot
	ExportSnapshot(ctx context.Context) (*model.Snapshot, error)
	ImportSnapshot(ctx context.Context, snap *model.Snapshot) (*ImportCounts, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateBoardRequest holds parameters for creating a board.
type CreateBoardRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	DefaultGroups bool   `json:"default_groups,omitempty"`
}

// CreateItemRequest holds parameters for creating an item.
type CreateItemRequest struct {
	BoardID       string      `json:"board_id"`
	GroupID       string      `json:"group_id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Status        string      `json:"status,omitempty"`
	StartDate     *model.Date `json:"start_date,omitempty"`
	DueDate       *model.Date `json:"due_date,omitempty"`
	TimelineStart *model.Date `json:"timeline_start,omitempty"`
	TimelineEnd   *model.Date `json:"timeline_end,omitempty"`
	CreatedBy     string      `json:"created_by,omitempty"`
	Assignees     []string    `json:"assignees,omitempty"`
	Dependencies  []string    `json:"dependencies,omitempty"`
}

// UpdateItemRequest holds optional parameters for updating an item.
// Nil pointer fields mean "don't change"; a zero date clears the field.
type UpdateItemRequest struct {
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

// ListItemsRequest holds filter parameters for listing items.
type ListItemsRequest struct {
	Board      string
	Group      string
	Status     []string
	AssignedTo string
	Search     string
}

// ItemDetail is an item together with its derived and relational state.
type ItemDetail struct {
	model.Item
	Blocked      bool     `json:"blocked"`
	Assignees    []string `json:"assignees"`
	Dependencies []string `json:"dependencies"`
}

// MemberItemsResponse is the my-work view for a single member.
type MemberItemsResponse struct {
	Items []MemberItem `json:"items"`
	Today model.Date   `json:"today"`
}

// MemberItem is an assigned item annotated for the my-work view.
type MemberItem struct {
	model.Item
	Blocked  bool `json:"blocked"`
	DueToday bool `json:"due_today"`
}

// LanesResponse is the status-lane view of a board.
type LanesResponse struct {
	BoardID string `json:"board_id"`
	Lanes   []Lane `json:"lanes"`
}

// Lane groups a board's items by status.
type Lane struct {
	Status model.Status `json:"status"`
	Items  []LaneItem   `json:"items"`
}

// LaneItem is an item annotated for the lanes view.
type LaneItem struct {
	model.Item
	Blocked bool `json:"blocked"`
}

// TimelineResponse is the scheduling view of a board.
type TimelineResponse struct {
	BoardID string        `json:"board_id"`
	Today   model.Date    `json:"today"`
	Rows    []TimelineRow `json:"rows"`
}

// TimelineRow is one item's scheduling line.
type TimelineRow struct {
	ItemID   string       `json:"item_id"`
	Title    string       `json:"title"`
	Status   model.Status `json:"status"`
	Start    model.Date   `json:"start"`
	End      model.Date   `json:"end"`
	Duration int          `json:"duration"`
	Blocked  bool         `json:"blocked"`
}

// WorkloadResponse maps member IDs to task-days inside the window.
type WorkloadResponse struct {
	BoardID  string         `json:"board_id"`
	From     model.Date     `json:"from"`
	To       model.Date     `json:"to"`
	Today    model.Date     `json:"today"`
	Workload map[string]int `json:"workload"`
}

// DependenciesResponse is an item's outgoing dependency set with its
// derived blocked flag.
type DependenciesResponse struct {
	ItemID    string   `json:"item_id"`
	DependsOn []string `json:"depends_on"`
	Blocked   bool     `json:"blocked"`
}

// ImportCounts reports how many records a snapshot import loaded.
type ImportCounts struct {
	Members int `json:"members"`
	Boards  int `json:"boards"`
	Groups  int `json:"groups"`
	Items   int `json:"items"`
}
