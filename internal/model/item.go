package model

// Status represents the current lane of an item on the kanban view.
type Status string

const (
	StatusNotStarted Status = "Not started"
	StatusInProgress Status = "In progress"
	StatusBlocked    Status = "Blocked"
	StatusDone       Status = "Done"
)

// statusCycle is the fixed lane-advancement order. Next wraps from Done
// back to Not started.
var statusCycle = []Status{StatusNotStarted, StatusInProgress, StatusBlocked, StatusDone}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// Next returns the next status in the cycle. An unknown status maps to
// the start of the cycle.
func (s Status) Next() Status {
	for i, cur := range statusCycle {
		if cur == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return statusCycle[0]
}

// Statuses returns the cycle order, for pickers and lane rendering.
func Statuses() []Status {
	out := make([]Status, len(statusCycle))
	copy(out, statusCycle)
	return out
}

// Item is a task belonging to exactly one board and one group.
//
// The four date fields are independently optional. Status is a free-form
// field: the dependency resolver informs UI affordances (disabling forward
// moves) but never mutates status itself.
type Item struct {
	ID            string `json:"id"`
	BoardID       string `json:"board_id"`
	GroupID       string `json:"group_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Status        Status `json:"status"`
	StartDate     *Date  `json:"start_date,omitempty"`
	DueDate       *Date  `json:"due_date,omitempty"`
	TimelineStart *Date  `json:"timeline_start,omitempty"`
	TimelineEnd   *Date  `json:"timeline_end,omitempty"`
	CreatedBy     string `json:"created_by,omitempty"`
}
