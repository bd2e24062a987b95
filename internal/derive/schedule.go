// Package derive computes state that is a pure function of the board store:
// blocked status, effective schedule ranges, and per-member workload.
// Nothing in this package mutates or memoizes; every answer is recomputed
// from the inputs on each call.
package derive

import "github.com/alfredjeanlab/teamboard/internal/model"

// EffectiveRange derives the (start, end) date pair used for scheduling
// views from an item's four optional date fields:
//
//	start = timeline_start ?? start_date ?? due_date
//	end   = timeline_end   ?? due_date   ?? start_date
//
// When both sides resolve to nothing the range collapses to the
// caller-supplied reference date. When only one side resolves, the other
// is set equal to it (zero-length range).
func EffectiveRange(it *model.Item, today model.Date) (model.Date, model.Date) {
	start := coalesce(it.TimelineStart, it.StartDate, it.DueDate)
	end := coalesce(it.TimelineEnd, it.DueDate, it.StartDate)

	switch {
	case start == nil && end == nil:
		return today, today
	case start == nil:
		return *end, *end
	case end == nil:
		return *start, *start
	}
	return *start, *end
}

// Duration is the whole-day length of a range, inclusive of both endpoints
// and floored at 1.
func Duration(start, end model.Date) int {
	if d := start.DaysUntil(end) + 1; d > 1 {
		return d
	}
	return 1
}

func coalesce(dates ...*model.Date) *model.Date {
	for _, d := range dates {
		if d != nil {
			return d
		}
	}
	return nil
}
