package server

import (
	"encoding/json"
	"net/http"

	"github.com/alfredjeanlab/teamboard/internal/events"
)

// handleGetAssignees handles GET /v1/items/{id}/assignees.
func (s *BoardServer) handleGetAssignees(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.GetItem(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}

	assignees, err := s.store.Assignees(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	if assignees == nil {
		assignees = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"item_id": id, "assignees": assignees})
}

// handleAssign handles POST /v1/items/{id}/assignees. Assigning a member
// who already holds the item is a no-op.
func (s *BoardServer) handleAssign(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in struct {
		MemberID string `json:"member_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.MemberID == "" {
		writeError(w, http.StatusBadRequest, "member_id is required")
		return
	}

	if err := s.store.Assign(r.Context(), id, in.MemberID); err != nil {
		serviceError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicAssignmentAdded, events.AssignmentAdded{ItemID: id, MemberID: in.MemberID})

	assignees, err := s.store.Assignees(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item_id": id, "assignees": assignees})
}

// handleUnassign handles DELETE /v1/items/{id}/assignees/{member}.
// Removing an assignment that does not exist is a no-op.
func (s *BoardServer) handleUnassign(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	member := r.PathValue("member")

	if err := s.store.Unassign(r.Context(), id, member); err != nil {
		serviceError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicAssignmentRemoved, events.AssignmentRemoved{ItemID: id, MemberID: member})

	w.WriteHeader(http.StatusNoContent)
}

// handleGetDependencies handles GET /v1/items/{id}/dependencies.
func (s *BoardServer) handleGetDependencies(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.GetItem(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}

	deps, err := s.store.Dependencies(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	if deps == nil {
		deps = []string{}
	}

	blocked := s.blockedFor(r.Context(), deps)
	writeJSON(w, http.StatusOK, map[string]any{"item_id": id, "depends_on": deps, "blocked": blocked})
}

// handleAddDependency handles POST /v1/items/{id}/dependencies. A self
// dependency is silently ignored; a duplicate edge is a no-op.
func (s *BoardServer) handleAddDependency(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in struct {
		DependsOn string `json:"depends_on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.DependsOn == "" {
		writeError(w, http.StatusBadRequest, "depends_on is required")
		return
	}

	if err := s.store.AddDependency(r.Context(), id, in.DependsOn); err != nil {
		serviceError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicDependencyAdded, events.DependencyAdded{ItemID: id, DependsOnID: in.DependsOn})

	deps, err := s.store.Dependencies(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item_id": id, "depends_on": deps})
}

// handleRemoveDependency handles DELETE /v1/items/{id}/dependencies/{dep}.
func (s *BoardServer) handleRemoveDependency(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	dep := r.PathValue("dep")

	if err := s.store.RemoveDependency(r.Context(), id, dep); err != nil {
		serviceError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicDependencyRemoved, events.DependencyRemoved{ItemID: id, DependsOnID: dep})

	w.WriteHeader(http.StatusNoContent)
}

// handleClearDependencies handles DELETE /v1/items/{id}/dependencies,
// removing every outgoing edge of the item.
func (s *BoardServer) handleClearDependencies(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.GetItem(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}

	deps, err := s.store.Dependencies(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	if err := s.store.ClearDependencies(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}

	for _, dep := range deps {
		s.publish(r.Context(), events.TopicDependencyRemoved, events.DependencyRemoved{ItemID: id, DependsOnID: dep})
	}

	w.WriteHeader(http.StatusNoContent)
}
