package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alfredjeanlab/teamboard/internal/events"
	"github.com/alfredjeanlab/teamboard/internal/model"
)

// handleCreateItem handles POST /v1/items.
func (s *BoardServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var in createItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	detail, err := s.createItem(r.Context(), in)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

// handleListItems handles GET /v1/items with optional filter parameters:
// board, group, status (comma-separated), assigned_to, search.
func (s *BoardServer) handleListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ItemFilter{
		BoardID:    q.Get("board"),
		GroupID:    q.Get("group"),
		AssignedTo: q.Get("assigned_to"),
		Search:     q.Get("search"),
	}
	if raw := q.Get("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status := model.Status(strings.TrimSpace(part))
			if !status.IsValid() {
				writeError(w, http.StatusBadRequest, "unknown status "+string(status))
				return
			}
			filter.Status = append(filter.Status, status)
		}
	}

	items, err := s.store.ListItems(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []*model.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleGetItem handles GET /v1/items/{id}. The response carries the item
// plus its derived blocked flag and relation sets.
func (s *BoardServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.store.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	detail, err := s.detailFor(r.Context(), it)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleUpdateItem handles PATCH /v1/items/{id}.
func (s *BoardServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var in updateItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	detail, err := s.updateItem(r.Context(), r.PathValue("id"), in)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleDeleteItem handles DELETE /v1/items/{id}. Assignment and dependency
// entries referencing the item in either direction go with it.
func (s *BoardServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteItem(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicItemDeleted, events.ItemDeleted{ItemID: id})

	w.WriteHeader(http.StatusNoContent)
}

// handleAdvanceItem handles POST /v1/items/{id}/advance.
func (s *BoardServer) handleAdvanceItem(w http.ResponseWriter, r *http.Request) {
	detail, err := s.advanceItem(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleItemBlocked handles GET /v1/items/{id}/blocked.
func (s *BoardServer) handleItemBlocked(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.GetItem(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}

	blocked, err := s.isBlocked(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item_id": id, "blocked": blocked})
}
