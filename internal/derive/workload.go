package derive

import (
	"errors"
	"fmt"

	"github.com/alfredjeanlab/teamboard/internal/model"
)

// ErrInvalidWindow is returned when a workload window has start after end.
var ErrInvalidWindow = errors.New("window start is after window end")

// OverlapDays is the number of whole days shared by the inclusive ranges
// [start, end] and [winStart, winEnd]; zero when they do not intersect.
func OverlapDays(start, end, winStart, winEnd model.Date) int {
	lo := model.MaxDate(start, winStart)
	hi := model.MinDate(end, winEnd)
	if hi.Before(lo) {
		return 0
	}
	return lo.DaysUntil(hi) + 1
}

// Workload computes task-days per member over the inclusive window
// [winStart, winEnd]. For each member it sums, over every item assigned to
// them, the overlap between the item's effective range and the window. An
// item with no date information contributes a range collapsed to the
// reference date. Members with no overlapping items report 0, not absence.
//
// A window with start after end is a caller error; no partial result is
// computed.
func Workload(winStart, winEnd, today model.Date, memberIDs []string, itemsFor func(memberID string) []*model.Item) (map[string]int, error) {
	if winStart.After(winEnd) {
		return nil, fmt.Errorf("workload window [%s, %s]: %w", winStart, winEnd, ErrInvalidWindow)
	}

	load := make(map[string]int, len(memberIDs))
	for _, id := range memberIDs {
		load[id] = 0
		for _, it := range itemsFor(id) {
			start, end := EffectiveRange(it, today)
			load[id] += OverlapDays(start, end, winStart, winEnd)
		}
	}
	return load, nil
}
