package model

// Board is a named collection of groups and items. Groups and items point
// back at their board through board_id.
type Board struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Group is an ordered lane within a board. Position is the only ordering
// criterion; positions need not be distinct, ties fall back to insertion order.
type Group struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}
