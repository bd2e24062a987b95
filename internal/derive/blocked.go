package derive

import "github.com/alfredjeanlab/teamboard/internal/model"

// IsBlocked reports whether an item with the given outgoing dependency
// targets is blocked. An item with no dependencies is never blocked.
// Otherwise it is blocked unless every target exists and is exactly Done;
// a missing target counts as unsatisfied (fail-safe).
func IsBlocked(dependsOn []string, lookup func(id string) (*model.Item, bool)) bool {
	if len(dependsOn) == 0 {
		return false
	}
	for _, id := range dependsOn {
		dep, ok := lookup(id)
		if !ok || dep == nil || dep.Status != model.StatusDone {
			return true
		}
	}
	return false
}

// CanAdvance reports whether an item may take the next step in the status
// cycle. Forward movement into "In progress" or "Done" is disallowed while
// the item is blocked; movement into "Blocked" or back to "Not started" is
// always allowed. This is an advisory gate for callers; it never prevents
// a direct status write.
func CanAdvance(current model.Status, blocked bool) bool {
	switch current.Next() {
	case model.StatusInProgress, model.StatusDone:
		return !blocked
	}
	return true
}
