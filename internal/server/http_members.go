package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alfredjeanlab/teamboard/internal/events"
	"github.com/alfredjeanlab/teamboard/internal/idgen"
	"github.com/alfredjeanlab/teamboard/internal/model"
)

// handleCreateMember handles POST /v1/members.
func (s *BoardServer) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := idgen.Member()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	m := &model.Member{ID: id, Name: in.Name, Email: in.Email}
	if err := s.store.CreateMember(r.Context(), m); err != nil {
		serviceError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicMemberCreated, events.MemberCreated{Member: m})

	writeJSON(w, http.StatusCreated, m)
}

// handleListMembers handles GET /v1/members.
func (s *BoardServer) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.store.ListMembers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	if members == nil {
		members = []*model.Member{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

// handleGetMember handles GET /v1/members/{id}.
func (s *BoardServer) handleGetMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.GetMember(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// myItem is an assigned item annotated for the my-work view.
type myItem struct {
	*model.Item
	Blocked  bool `json:"blocked"`
	DueToday bool `json:"due_today"`
}

// handleMemberItems handles GET /v1/members/{id}/items. The optional
// "today" query parameter sets the reference date for the due-today flag.
func (s *BoardServer) handleMemberItems(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.GetMember(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}

	today, err := dateParam(r, "today", s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.store.ListItems(r.Context(), model.ItemFilter{AssignedTo: id})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	out := make([]myItem, 0, len(items))
	for _, it := range items {
		blocked, err := s.isBlocked(r.Context(), it.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = append(out, myItem{
			Item:     it,
			Blocked:  blocked,
			DueToday: it.DueDate != nil && *it.DueDate == today,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "today": today})
}

// dateParam parses an optional ISO-8601 date query parameter, returning
// fallback when the parameter is absent.
func dateParam(r *http.Request, name string, fallback model.Date) (model.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	d, err := model.ParseDate(v)
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid %s date %q", name, v)
	}
	return d, nil
}
