package server

import (
	"encoding/json"
	"net/http"

	"github.com/alfredjeanlab/teamboard/internal/events"
	"github.com/alfredjeanlab/teamboard/internal/idgen"
	"github.com/alfredjeanlab/teamboard/internal/model"
)

// defaultGroupNames are the groups created on a new board when the caller
// asks for them.
var defaultGroupNames = []string{"Backlog", "In Progress", "Done"}

// handleCreateBoard handles POST /v1/boards. With "default_groups": true
// the board starts with the standard Backlog / In Progress / Done groups.
func (s *BoardServer) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		DefaultGroups bool   `json:"default_groups"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := idgen.Board()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	b := &model.Board{ID: id, Name: in.Name, Description: in.Description}
	if err := s.store.CreateBoard(r.Context(), b); err != nil {
		serviceError(w, err)
		return
	}
	s.publish(r.Context(), events.TopicBoardCreated, events.BoardCreated{Board: b})

	if in.DefaultGroups {
		for pos, name := range defaultGroupNames {
			g, err := s.createGroup(r, b.ID, name, pos)
			if err != nil {
				serviceError(w, err)
				return
			}
			s.publish(r.Context(), events.TopicGroupCreated, events.GroupCreated{Group: g})
		}
	}

	writeJSON(w, http.StatusCreated, b)
}

// handleListBoards handles GET /v1/boards.
func (s *BoardServer) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.store.ListBoards(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list boards")
		return
	}
	if boards == nil {
		boards = []*model.Board{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"boards": boards})
}

// handleGetBoard handles GET /v1/boards/{id}.
func (s *BoardServer) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.GetBoard(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handleClearBoardItems handles DELETE /v1/boards/{id}/items. Every item on
// the board goes, along with all relation entries touching those items.
func (s *BoardServer) handleClearBoardItems(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	removed, err := s.store.ClearBoardItems(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicBoardCleared, events.BoardCleared{BoardID: id, Removed: removed})

	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

// createGroup persists a new group at the given position.
func (s *BoardServer) createGroup(r *http.Request, boardID, name string, position int) (*model.Group, error) {
	id, err := idgen.Group()
	if err != nil {
		return nil, err
	}
	g := &model.Group{ID: id, BoardID: boardID, Name: name, Position: position}
	if err := s.store.CreateGroup(r.Context(), g); err != nil {
		return nil, err
	}
	return g, nil
}

// handleCreateGroup handles POST /v1/boards/{id}/groups. Position defaults
// to the end of the board's current group sequence.
func (s *BoardServer) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("id")

	var in struct {
		Name     string `json:"name"`
		Position *int   `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	position := 0
	if in.Position != nil {
		position = *in.Position
	} else {
		existing, err := s.store.ListGroups(r.Context(), boardID)
		if err != nil {
			serviceError(w, err)
			return
		}
		position = len(existing)
	}

	g, err := s.createGroup(r, boardID, in.Name, position)
	if err != nil {
		serviceError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicGroupCreated, events.GroupCreated{Group: g})

	writeJSON(w, http.StatusCreated, g)
}

// handleListGroups handles GET /v1/boards/{id}/groups. Groups come back in
// display order: position ascending, insertion order breaking ties.
func (s *BoardServer) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.store.ListGroups(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	if groups == nil {
		groups = []*model.Group{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

// handleReorderGroups handles PUT /v1/boards/{id}/groups/order. The body
// names every group to reposition; each gets position = its index.
func (s *BoardServer) handleReorderGroups(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("id")

	var in struct {
		Order []string `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(in.Order) == 0 {
		writeError(w, http.StatusBadRequest, "order is required")
		return
	}

	if err := s.store.ReorderGroups(r.Context(), boardID, in.Order); err != nil {
		serviceError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicGroupReordered, events.GroupReordered{BoardID: boardID, Order: in.Order})

	groups, err := s.store.ListGroups(r.Context(), boardID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}
