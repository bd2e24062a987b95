package model

// ItemFilter holds criteria for querying items.
type ItemFilter struct {
	BoardID    string   `json:"board_id,omitempty"`
	GroupID    string   `json:"group_id,omitempty"`
	Status     []Status `json:"status,omitempty"`
	AssignedTo string   `json:"assigned_to,omitempty"`
	Search     string   `json:"search,omitempty"` // substring match on title/description
}
