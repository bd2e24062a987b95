package server

import (
	"errors"
	"net/http"
	"sort"

	"github.com/alfredjeanlab/teamboard/internal/derive"
	"github.com/alfredjeanlab/teamboard/internal/model"
)

// laneItem is an item annotated for the lanes view.
type laneItem struct {
	*model.Item
	Blocked bool `json:"blocked"`
}

// lane groups a board's items by status.
type lane struct {
	Status model.Status `json:"status"`
	Items  []laneItem   `json:"items"`
}

// handleLanes handles GET /v1/boards/{id}/lanes. Every status gets a lane,
// in cycle order, even when empty. Within a lane items sort by due date
// ascending with undated items last.
func (s *BoardServer) handleLanes(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("id")
	if _, err := s.store.GetBoard(r.Context(), boardID); err != nil {
		serviceError(w, err)
		return
	}

	items, err := s.store.ListItems(r.Context(), model.ItemFilter{BoardID: boardID})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	byStatus := make(map[model.Status][]laneItem)
	for _, it := range items {
		blocked, err := s.isBlocked(r.Context(), it.ID)
		if err != nil {
			serviceError(w, err)
			return
		}
		byStatus[it.Status] = append(byStatus[it.Status], laneItem{Item: it, Blocked: blocked})
	}

	lanes := make([]lane, 0, len(model.Statuses()))
	for _, status := range model.Statuses() {
		laneItems := byStatus[status]
		sort.SliceStable(laneItems, func(i, j int) bool {
			a, b := laneItems[i].DueDate, laneItems[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
		if laneItems == nil {
			laneItems = []laneItem{}
		}
		lanes = append(lanes, lane{Status: status, Items: laneItems})
	}

	writeJSON(w, http.StatusOK, map[string]any{"board_id": boardID, "lanes": lanes})
}

// timelineRow is one item's scheduling line in the timeline view.
type timelineRow struct {
	ItemID   string       `json:"item_id"`
	Title    string       `json:"title"`
	Status   model.Status `json:"status"`
	Start    model.Date   `json:"start"`
	End      model.Date   `json:"end"`
	Duration int          `json:"duration"`
	Blocked  bool         `json:"blocked"`
}

// handleTimeline handles GET /v1/boards/{id}/timeline. Each item's bar uses
// its effective range; the optional "today" parameter anchors the fallback
// for undated items.
func (s *BoardServer) handleTimeline(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("id")
	if _, err := s.store.GetBoard(r.Context(), boardID); err != nil {
		serviceError(w, err)
		return
	}

	today, err := dateParam(r, "today", s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.store.ListItems(r.Context(), model.ItemFilter{BoardID: boardID})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	rows := make([]timelineRow, 0, len(items))
	for _, it := range items {
		blocked, err := s.isBlocked(r.Context(), it.ID)
		if err != nil {
			serviceError(w, err)
			return
		}
		start, end := derive.EffectiveRange(it, today)
		rows = append(rows, timelineRow{
			ItemID:   it.ID,
			Title:    it.Title,
			Status:   it.Status,
			Start:    start,
			End:      end,
			Duration: derive.Duration(start, end),
			Blocked:  blocked,
		})
	}

	// Earliest start first; ties keep list order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Start.Before(rows[j].Start)
	})

	writeJSON(w, http.StatusOK, map[string]any{"board_id": boardID, "today": today, "rows": rows})
}

// handleWorkload handles GET /v1/boards/{id}/workload?from=&to=&today=.
// The window bounds are required; "today" defaults to the server clock.
func (s *BoardServer) handleWorkload(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("id")
	if _, err := s.store.GetBoard(r.Context(), boardID); err != nil {
		serviceError(w, err)
		return
	}

	q := r.URL.Query()
	if q.Get("from") == "" || q.Get("to") == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}
	from, err := dateParam(r, "from", model.Date{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := dateParam(r, "to", model.Date{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	today, err := dateParam(r, "today", s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	members, err := s.store.ListMembers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	memberIDs := make([]string, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}

	var loadErr error
	load, err := derive.Workload(from, to, today, memberIDs, func(memberID string) []*model.Item {
		items, err := s.store.ListItems(r.Context(), model.ItemFilter{BoardID: boardID, AssignedTo: memberID})
		if err != nil {
			loadErr = err
			return nil
		}
		return items
	})
	switch {
	case errors.Is(err, derive.ErrInvalidWindow):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		serviceError(w, err)
		return
	case loadErr != nil:
		serviceError(w, loadErr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"board_id": boardID,
		"from":     from,
		"to":       to,
		"today":    today,
		"workload": load,
	})
}
