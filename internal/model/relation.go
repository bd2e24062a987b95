package model

// Assignment links an item to a member. The relation has set semantics:
// duplicate insertion is a no-op.
type Assignment struct {
	ItemID   string `json:"item_id"`
	MemberID string `json:"member_id"`
}

// Dependency is a directed edge: ItemID cannot make progress until
// DependsOnID is Done. Self-loops are silently ignored at insertion.
type Dependency struct {
	ItemID      string `json:"item_id"`
	DependsOnID string `json:"depends_on_id"`
}
