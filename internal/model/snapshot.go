package model

// Snapshot is the portable dump of an entire board store: the four entity
// tables keyed by id, plus the two relations as lists of [id, id] pairs
// (lists rather than sets, for portability; entry order is insignificant).
// Export followed by Import must reconstruct an observably identical store.
type Snapshot struct {
	Members      map[string]*Member `json:"team_members"`
	Boards       map[string]*Board  `json:"boards"`
	Groups       map[string]*Group  `json:"groups"`
	Items        map[string]*Item   `json:"items"`
	Assignments  [][2]string        `json:"item_assignments"`
	Dependencies [][2]string        `json:"item_dependencies"`
}

// NewSnapshot returns an empty snapshot with all tables allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Members:      make(map[string]*Member),
		Boards:       make(map[string]*Board),
		Groups:       make(map[string]*Group),
		Items:        make(map[string]*Item),
		Assignments:  [][2]string{},
		Dependencies: [][2]string{},
	}
}
